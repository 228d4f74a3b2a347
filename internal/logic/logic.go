// Package logic is the client for the external welfare-scheme logic service.
//
// The service answers English questions about government schemes and may
// attach a generated application form. It is the one upstream the pipeline is
// allowed to lose: every error from this client is recoverable and triggers
// the local fallback responder instead of failing the request. A circuit
// breaker keeps a flapping backend from burning the 60-second timeout on
// every request while it is down.
package logic

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

	"github.com/sony/gobreaker"

	"github.com/vaanihq/vaani/internal/config"
)

// Reply is a successful answer from the logic service, already sanitized.
type Reply struct {
	Text         string
	FormHTML     string
	FormFilename string
}

// Client talks to the logic service.
type Client struct {
	chatURL string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// New creates a logic client from config. The chat URL is used as-is for
// questions; form retrieval strips the trailing /chat path segment to reach
// the service's base endpoint.
func New(cfg config.LogicConfig) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "logic",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("logic circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		chatURL: cfg.URL,
		baseURL: baseOf(cfg.URL),
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		breaker: breaker,
	}
}

// baseOf strips everything from the /chat path segment onward.
func baseOf(chatURL string) string {
	if idx := strings.Index(chatURL, "/chat"); idx >= 0 {
		return chatURL[:idx]
	}
	return strings.TrimSuffix(chatURL, "/")
}

type askRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type askResponse struct {
	Response     string `json:"response"`
	FormHTML     string `json:"formHTML"`
	FormFilename string `json:"form_filename"`
}

// Ask sends an English question to the logic service and returns its reply.
// Any failure — network error, timeout, non-2xx status, open breaker — is
// returned to the caller, who substitutes the fallback responder.
func (c *Client) Ask(ctx context.Context, message, userID string) (*Reply, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.ask(ctx, message, userID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Reply), nil
}

func (c *Client) ask(ctx context.Context, message, userID string) (*Reply, error) {
	body, err := json.Marshal(askRequest{Message: message, UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("marshalling logic request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating logic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("logic request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("logic service status %d: %s", resp.StatusCode, respBody)
	}

	var ar askResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("decoding logic response: %w", err)
	}

	return &Reply{
		Text:         Sanitize(ar.Response),
		FormHTML:     ar.FormHTML,
		FormFilename: ar.FormFilename,
	}, nil
}

// Sanitize truncates a reply at the first literal '(' and trims whitespace.
// Some upstream deployments append parenthetical asides meant for operators,
// not users.
func Sanitize(text string) string {
	return strings.TrimSpace(strings.SplitN(text, "(", 2)[0])
}

// FetchForm retrieves a previously generated form from the logic service's
// base endpoint. A non-200 status is an error; callers treat any failure as
// not-found.
func (c *Client) FetchForm(ctx context.Context, filename string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/form/%s", c.baseURL, filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating form request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("form request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("form fetch status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading form: %w", err)
	}
	return content, nil
}

// Ping probes the logic service with a lightweight question. The service only
// speaks POST, so the probe goes through the chat endpoint.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.ask(ctx, "ping", "system_check")
	return err
}
