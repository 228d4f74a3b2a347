// Package message defines the core data types flowing through the vaani pipeline.
package message

import (
	"encoding/json"
	"log/slog"
)

// ProcessRequest represents one inbound audio-processing request. It lives for
// the duration of a single HTTP request and owns the temporary audio file,
// which the pipeline removes on every exit path.
type ProcessRequest struct {
	// AudioPath is the temporary file holding the uploaded audio.
	AudioPath string

	// UserID identifies the caller to the logic service. Defaults to
	// "default_user" when the client omits it.
	UserID string

	// Language is the caller's selected ISO-639-1 code (e.g., "hi", "en").
	// Defaults to "en".
	Language string

	// History is the prior conversation, most recent turn last. Only the
	// last turn's AIResponse is consulted.
	History []Turn
}

// Turn is one prior exchange's stored AI reply, supplied by the caller for
// repetition checking.
type Turn struct {
	AIResponse string `json:"aiResponse"`
	Language   string `json:"language,omitempty"`
}

// LastReply returns the most recent turn's AI reply, or "" if there is none.
func (r *ProcessRequest) LastReply() string {
	if len(r.History) == 0 {
		return ""
	}
	return r.History[len(r.History)-1].AIResponse
}

// ParseHistory decodes a JSON-encoded conversation history array. Malformed
// or empty input yields an empty history rather than an error: clients send
// whatever they have accumulated and the pipeline only needs the last reply.
func ParseHistory(raw string) []Turn {
	if raw == "" {
		return nil
	}
	var turns []Turn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		slog.Warn("could not parse conversation history, treating as empty", "error", err)
		return nil
	}
	return turns
}

// PipelineResult is the outcome of processing a request through the full
// pipeline. It is built up stage by stage and immutable once returned.
type PipelineResult struct {
	// Transcription is the English text produced from the input audio.
	Transcription string `json:"transcription"`

	// SpokenResponse is the final reply text in the caller's language.
	SpokenResponse string `json:"spokenResponse"`

	// FormHTML is inline form content returned by the logic service, if any.
	FormHTML string `json:"formHTML,omitempty"`

	// FormFilename names a generated form retrievable via GET /form/{name}.
	FormFilename string `json:"form_filename,omitempty"`

	// AudioURL is the path to the synthesized reply audio (e.g., "/audio/response_1712.mp3").
	AudioURL string `json:"audioUrl"`

	Success bool `json:"success"`
}
