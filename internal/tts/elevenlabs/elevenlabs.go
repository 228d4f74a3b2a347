// Package elevenlabs implements the tts.Synthesizer using the ElevenLabs API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vaanihq/vaani/internal/config"
	"github.com/vaanihq/vaani/internal/tts"
)

// Synthesizer calls the ElevenLabs text-to-speech endpoint.
type Synthesizer struct {
	apiKey    string
	baseURL   string
	languages map[string]config.LanguageProfile
	client    *http.Client
}

// New creates a Synthesizer from config and the Language Profile table.
func New(cfg config.TTSConfig, languages map[string]config.LanguageProfile) *Synthesizer {
	return &Synthesizer{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		languages: languages,
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize resolves the language's voice profile and returns the generated
// audio bytes. A missing profile returns tts.ErrNoProfile.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	profile, ok := s.languages[language]
	if !ok {
		return nil, fmt.Errorf("%w: %q", tts.ErrNoProfile, language)
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, ModelID: profile.ModelID})
	if err != nil {
		return nil, fmt.Errorf("marshalling synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, profile.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("synthesis failed (status %d): %s", resp.StatusCode, respBody)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading synthesized audio: %w", err)
	}

	slog.Debug("synthesis complete", "language", language, "voice", profile.VoiceID, "audio_bytes", len(audio))
	return audio, nil
}
