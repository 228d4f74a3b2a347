// Package pipeline implements the core audio-processing orchestration.
//
// Each request runs five stages in order: translate audio to English, ask the
// logic service (or fall back locally), guard against repetition, localize
// the reply, and synthesize speech. The stages are sequential because each
// external call consumes the previous call's result.
//
// Failure handling follows a fixed taxonomy. Speech translation, synthesis,
// and a missing voice profile are fatal to the request. A logic service
// failure is recoverable and substitutes the fallback responder — an
// unavailable backend must never prevent a reply. Translation failures
// degrade silently inside the localizer. Neither the fallback nor the
// repetition substitute is flagged to the user.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vaanihq/vaani/internal/engine"
	"github.com/vaanihq/vaani/internal/fallback"
	"github.com/vaanihq/vaani/internal/logic"
	"github.com/vaanihq/vaani/internal/message"
	"github.com/vaanihq/vaani/internal/repetition"
	"github.com/vaanihq/vaani/internal/store"
	"github.com/vaanihq/vaani/internal/tts"
)

// Error is a fatal pipeline failure, tagged with the stage that produced it.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// LogicService answers English questions. Errors are recoverable.
type LogicService interface {
	Ask(ctx context.Context, message, userID string) (*logic.Reply, error)
}

// Responder generates replies locally when the logic service is unavailable.
type Responder interface {
	Respond(englishText string) (*fallback.Response, error)
}

// Localizer translates English replies into the user's language, degrading
// to the English text on failure.
type Localizer interface {
	Localize(ctx context.Context, englishText, language string) string
}

// Pipeline orchestrates the five processing stages.
type Pipeline struct {
	speech      engine.SpeechEngine
	logic       LogicService
	fallback    Responder
	localizer   Localizer
	synthesizer tts.Synthesizer
	audio       *store.Store
	now         func() time.Time
}

// New creates a Pipeline from its stage collaborators. Generated audio is
// persisted to the audio store and referenced by URL in the result.
func New(speech engine.SpeechEngine, logicSvc LogicService, responder Responder,
	localizer Localizer, synthesizer tts.Synthesizer, audio *store.Store) *Pipeline {
	return &Pipeline{
		speech:      speech,
		logic:       logicSvc,
		fallback:    responder,
		localizer:   localizer,
		synthesizer: synthesizer,
		audio:       audio,
		now:         time.Now,
	}
}

// Process runs one request through the pipeline. The temporary input audio
// file is removed on every exit path.
func (p *Pipeline) Process(ctx context.Context, req *message.ProcessRequest) (*message.PipelineResult, error) {
	start := time.Now()
	logger := slog.With("user_id", req.UserID, "language", req.Language)
	defer func() {
		if err := os.Remove(req.AudioPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("could not remove temporary audio file", "path", req.AudioPath, "error", err)
		}
	}()

	// Stage 1: translate audio to English.
	audioFile, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, &Error{Stage: "transcription", Err: fmt.Errorf("opening audio: %w", err)}
	}
	transcription, err := p.speech.TranslateAudio(ctx, audioFile, audioFile.Name())
	audioFile.Close()
	if err != nil {
		return nil, &Error{Stage: "transcription", Err: err}
	}
	logger.Info("audio translated", "text_length", len(transcription))

	result := &message.PipelineResult{Transcription: transcription}

	// Stage 2/3: ask the logic service; its failure substitutes the fallback.
	replyText := ""
	reply, err := p.logic.Ask(ctx, transcription, req.UserID)
	if err != nil {
		logger.Warn("logic service unavailable, using fallback responder", "error", err)
		fb, fbErr := p.fallback.Respond(transcription)
		if fbErr != nil {
			return nil, &Error{Stage: "fallback", Err: fbErr}
		}
		replyText = fb.Text
		result.FormFilename = fb.FormFilename
	} else {
		replyText = reply.Text
		result.FormHTML = reply.FormHTML
		result.FormFilename = reply.FormFilename
		logger.Info("logic service replied", "text_length", len(replyText), "form", result.FormFilename)
	}

	// Stage 4: repetition guard over the most recent turn.
	guarded, substituted := repetition.Guard(req.LastReply(), replyText, req.Language)
	if substituted {
		logger.Info("repetitive reply detected, substituting variation")
	}

	// Stage 5: localize and synthesize.
	final := p.localizer.Localize(ctx, guarded, req.Language)
	result.SpokenResponse = final

	audio, err := p.synthesizer.Synthesize(ctx, final, req.Language)
	if err != nil {
		return nil, &Error{Stage: "synthesis", Err: err}
	}

	audioName := store.AudioFilename(p.now())
	if err := p.audio.Put(audioName, audio); err != nil {
		return nil, &Error{Stage: "storage", Err: err}
	}
	result.AudioURL = "/audio/" + audioName
	result.Success = true

	logger.Info("pipeline complete", "duration", time.Since(start), "audio", audioName)
	return result, nil
}
