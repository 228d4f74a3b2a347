// Package engine defines the interfaces for the external AI engines.
//
// Two engines back the pipeline: a speech engine that translates spoken audio
// to English text, and a text engine that generates text from a system
// instruction and a user message. Vaani ships with a Groq backend that
// implements both over the OpenAI-compatible HTTP API.
package engine

import (
	"context"
	"io"
)

// SpeechEngine converts spoken-language audio into English text.
type SpeechEngine interface {
	// TranslateAudio streams the audio to the engine and returns the English
	// transcription. filename hints the container format (e.g., "clip.webm").
	TranslateAudio(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Completion is one text-generation request.
type Completion struct {
	// System is the system instruction; empty means none.
	System string

	// User is the user message.
	User string

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens bounds the response length; 0 means no explicit bound.
	MaxTokens int
}

// TextEngine generates text from a prompt pair.
type TextEngine interface {
	// Complete runs one completion and returns the generated text. An empty
	// result with a nil error means the model returned no content.
	Complete(ctx context.Context, req Completion) (string, error)

	// Ping issues a minimal completion to probe engine availability.
	Ping(ctx context.Context) error
}
