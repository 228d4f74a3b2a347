package localize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaanihq/vaani/internal/config"
	"github.com/vaanihq/vaani/internal/engine"
)

type fakeEngine struct {
	completeFunc func(ctx context.Context, req engine.Completion) (string, error)
	calls        int
	lastReq      engine.Completion
}

func (f *fakeEngine) Complete(ctx context.Context, req engine.Completion) (string, error) {
	f.calls++
	f.lastReq = req
	if f.completeFunc != nil {
		return f.completeFunc(ctx, req)
	}
	return "", nil
}

func (f *fakeEngine) Ping(ctx context.Context) error { return nil }

var testLanguages = map[string]config.LanguageProfile{
	"en": {Name: "English"},
	"hi": {Name: "Hindi"},
}

func TestLocalize_EnglishPassesThrough(t *testing.T) {
	eng := &fakeEngine{}
	l := New(eng, testLanguages)

	out := l.Localize(context.Background(), "Thanks for asking.", "en")

	assert.Equal(t, "Thanks for asking.", out)
	assert.Zero(t, eng.calls, "English must not call the translation engine")
}

func TestLocalize_TranslatesWithVerbatimPrompt(t *testing.T) {
	eng := &fakeEngine{completeFunc: func(ctx context.Context, req engine.Completion) (string, error) {
		return "धन्यवाद।", nil
	}}
	l := New(eng, testLanguages)

	out := l.Localize(context.Background(), "Thanks for asking.", "hi")

	assert.Equal(t, "धन्यवाद।", out)
	assert.Equal(t, 1, eng.calls)
	assert.Contains(t, eng.lastReq.System, "Hindi")
	assert.Contains(t, eng.lastReq.System, "nothing more, nothing less")
	assert.Contains(t, eng.lastReq.User, `"Thanks for asking."`)
	assert.InDelta(t, 0.1, eng.lastReq.Temperature, 1e-9)
}

func TestLocalize_ErrorDegradesToEnglish(t *testing.T) {
	eng := &fakeEngine{completeFunc: func(ctx context.Context, req engine.Completion) (string, error) {
		return "", errors.New("engine down")
	}}
	l := New(eng, testLanguages)

	out := l.Localize(context.Background(), "Thanks for asking.", "hi")
	assert.Equal(t, "Thanks for asking.", out)
}

func TestLocalize_EmptyOutputDegradesToEnglish(t *testing.T) {
	eng := &fakeEngine{}
	l := New(eng, testLanguages)

	out := l.Localize(context.Background(), "Thanks for asking.", "hi")
	assert.Equal(t, "Thanks for asking.", out)
}

func TestLocalize_UnknownLanguageUsesCodeAsName(t *testing.T) {
	eng := &fakeEngine{completeFunc: func(ctx context.Context, req engine.Completion) (string, error) {
		return "translated", nil
	}}
	l := New(eng, testLanguages)

	out := l.Localize(context.Background(), "hello", "fr")
	assert.Equal(t, "translated", out)
	assert.Contains(t, eng.lastReq.System, "fr translator")
}

func TestLocalize_EmptyInputPassesThrough(t *testing.T) {
	eng := &fakeEngine{}
	l := New(eng, testLanguages)

	assert.Empty(t, l.Localize(context.Background(), "", "hi"))
	assert.Zero(t, eng.calls)
}
