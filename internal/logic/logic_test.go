package logic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaanihq/vaani/internal/config"
)

func newClient(url string) *Client {
	return New(config.LogicConfig{URL: url + "/chat", TimeoutSeconds: 5})
}

func TestAsk_Success(t *testing.T) {
	var got askRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(askResponse{
			Response:     "Thanks for asking.(note: internal)",
			FormFilename: "welfare_scheme_form_20240315_000123.html",
		})
	}))
	defer srv.Close()

	reply, err := newClient(srv.URL).Ask(context.Background(), "hello", "user-1")
	require.NoError(t, err)

	assert.Equal(t, "hello", got.Message)
	assert.Equal(t, "user-1", got.UserID)
	// Parenthetical aside stripped, whitespace trimmed.
	assert.Equal(t, "Thanks for asking.", reply.Text)
	assert.Equal(t, "welfare_scheme_form_20240315_000123.html", reply.FormFilename)
}

func TestAsk_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Ask(context.Background(), "hello", "user-1")
	assert.Error(t, err)
}

func TestAsk_NetworkErrorIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newClient(srv.URL).Ask(context.Background(), "hello", "user-1")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Thanks for asking.(note: internal)", "Thanks for asking."},
		{"  plain reply  ", "plain reply"},
		{"a (b) c (d)", "a"},
		{"(all aside)", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Sanitize(tc.in), "Sanitize(%q)", tc.in)
	}
}

func TestBaseOf(t *testing.T) {
	assert.Equal(t, "http://logic.local", baseOf("http://logic.local/chat"))
	assert.Equal(t, "http://logic.local", baseOf("http://logic.local/chat/"))
	assert.Equal(t, "http://logic.local", baseOf("http://logic.local/"))
	assert.Equal(t, "http://logic.local", baseOf("http://logic.local"))
}

func TestFetchForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/form/f.html", r.URL.Path)
		_, _ = w.Write([]byte("<html>form</html>"))
	}))
	defer srv.Close()

	content, err := newClient(srv.URL).FetchForm(context.Background(), "f.html")
	require.NoError(t, err)
	assert.Equal(t, "<html>form</html>", string(content))
}

func TestFetchForm_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchForm(context.Background(), "missing.html")
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	var got askRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(askResponse{Response: "pong"})
	}))
	defer srv.Close()

	require.NoError(t, newClient(srv.URL).Ping(context.Background()))
	assert.Equal(t, "ping", got.Message)
	assert.Equal(t, "system_check", got.UserID)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newClient(srv.URL)
	for i := 0; i < 6; i++ {
		_, err := c.Ask(context.Background(), "q", "u")
		require.Error(t, err)
	}

	// Circuit is now open: the request fails fast without reaching the server.
	srv.Close()
	_, err := c.Ask(context.Background(), "q", "u")
	assert.Error(t, err)
}
