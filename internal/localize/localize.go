// Package localize translates English replies into the user's language.
//
// Translation goes through the text engine with a verbatim-translation system
// prompt at low temperature. The localizer never fails a request: an error or
// empty model output degrades to the untranslated English text.
package localize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vaanihq/vaani/internal/config"
	"github.com/vaanihq/vaani/internal/engine"
)

// Localizer back-translates replies via a TextEngine.
type Localizer struct {
	engine    engine.TextEngine
	languages map[string]config.LanguageProfile
}

// New creates a Localizer using the given engine and language table.
func New(textEngine engine.TextEngine, languages map[string]config.LanguageProfile) *Localizer {
	return &Localizer{engine: textEngine, languages: languages}
}

// Localize translates englishText into the target language. English input
// passes through untouched with no engine call. Translation failures degrade
// silently to the English text.
func (l *Localizer) Localize(ctx context.Context, englishText, language string) string {
	if language == "en" || englishText == "" {
		return englishText
	}

	target := language
	if profile, ok := l.languages[language]; ok && profile.Name != "" {
		target = profile.Name
	}

	translated, err := l.engine.Complete(ctx, engine.Completion{
		System:      systemPrompt(target),
		User:        fmt.Sprintf("Please translate this English text to %s: %q", target, englishText),
		Temperature: 0.1,
	})
	if err != nil {
		slog.Warn("translation failed, using English reply", "language", language, "error", err)
		return englishText
	}
	if translated == "" {
		slog.Warn("translation returned empty output, using English reply", "language", language)
		return englishText
	}

	slog.Debug("reply translated", "language", language, "text_length", len(translated))
	return translated
}

// systemPrompt instructs the model to translate verbatim. The invariant that
// translation adds nothing and drops nothing is enforced only here, by the
// prompt; the output is not validated programmatically.
func systemPrompt(target string) string {
	var sb strings.Builder
	sb.WriteString("You are a precise " + target + " translator.\n")
	sb.WriteString("Your ONLY job is to translate the EXACT English text provided into natural " + target + ".\n")
	sb.WriteString("DO NOT add ANY introduction, greeting, or extra information.\n")
	sb.WriteString("DO NOT change or expand the original meaning.\n")
	sb.WriteString("DO NOT add your own content or explanations.\n")
	sb.WriteString("Simply translate EXACTLY what is provided - nothing more, nothing less.")
	return sb.String()
}
