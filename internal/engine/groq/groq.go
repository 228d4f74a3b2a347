// Package groq implements the engine interfaces using Groq's OpenAI-compatible API.
//
// It uses the Audio Translations API (Whisper) to turn spoken-language audio
// into English text, and the Chat Completions API for text generation.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/vaanihq/vaani/internal/config"
	"github.com/vaanihq/vaani/internal/engine"
)

// Client talks to the Groq API. It implements both engine.SpeechEngine and
// engine.TextEngine, since both surfaces live behind the same key and host.
type Client struct {
	apiKey             string
	baseURL            string
	transcriptionModel string
	completionModel    string
	client             *http.Client
}

// New creates a Groq client from config.
func New(cfg config.SpeechConfig) *Client {
	return &Client{
		apiKey:             cfg.APIKey,
		baseURL:            strings.TrimSuffix(cfg.BaseURL, "/"),
		transcriptionModel: cfg.TranscriptionModel,
		completionModel:    cfg.CompletionModel,
		client:             &http.Client{Timeout: 60 * time.Second},
	}
}

// TranslateAudio sends audio to the Audio Translations API and returns the
// English transcription.
func (c *Client) TranslateAudio(ctx context.Context, audio io.Reader, filename string) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("writing audio: %w", err)
	}
	_ = writer.WriteField("model", c.transcriptionModel)
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/translations", body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("translation failed (status %d): %s", resp.StatusCode, respBody)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding translation: %w", err)
	}

	slog.Debug("audio translation complete", "text_length", len(result.Text))
	return result.Text, nil
}

// Complete sends one request to the Chat Completions API and returns the
// generated text. A response with no choices yields "" and a nil error so
// callers can apply their own degradation policy.
func (c *Client) Complete(ctx context.Context, comp engine.Completion) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if comp.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: comp.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: comp.User})

	reqBody := chatRequest{
		Model:       c.completionModel,
		Messages:    messages,
		Temperature: comp.Temperature,
		MaxTokens:   comp.MaxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("chat failed (status %d): %s", resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", nil
	}
	return chatResp.Choices[0].Message.Content, nil
}

// Ping issues a single-token completion to verify the engine is reachable.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := c.Complete(ctx, engine.Completion{User: "hello", MaxTokens: 1})
	return err
}

// --- Internal wire types ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
