// Package tts defines the interface for text-to-speech synthesis.
//
// The synthesizer resolves a per-language voice/model pair from the Language
// Profile table and returns raw audio bytes. A language without a profile is
// a configuration error, not a transient failure: the mapping is static and a
// missing entry must surface instead of being silently defaulted.
package tts

import (
	"context"
	"errors"
)

// ErrNoProfile is returned when the requested language has no voice profile.
var ErrNoProfile = errors.New("tts: no voice profile for language")

// Synthesizer converts text to audio.
type Synthesizer interface {
	// Synthesize generates audio for text in the voice configured for the
	// given language code.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}
