package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaani.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsAndLanguageTable(t *testing.T) {
	path := writeConfig(t, `
logic:
  url: http://logic.local/chat
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 8081, cfg.Server.HealthPort)
	assert.Equal(t, "whisper-large-v3", cfg.Speech.TranscriptionModel)
	assert.Equal(t, "llama3-8b-8192", cfg.Speech.CompletionModel)
	assert.Equal(t, 60, cfg.Logic.TimeoutSeconds)

	// All six supported codes are present out of the box.
	for _, code := range []string{"hi", "en", "bn", "te", "mr", "ta"} {
		profile, ok := cfg.Languages[code]
		require.True(t, ok, "missing language profile for %q", code)
		assert.NotEmpty(t, profile.VoiceID, "empty voice for %q", code)
		assert.NotEmpty(t, profile.ModelID, "empty model for %q", code)
	}
	assert.Equal(t, "Hindi", cfg.Languages["hi"].Name)
	assert.Equal(t, "eleven_monolingual_v1", cfg.Languages["en"].ModelID)
}

func TestLoad_LanguageOverrideMergesWithDefaults(t *testing.T) {
	path := writeConfig(t, `
logic:
  url: http://logic.local/chat
languages:
  hi:
    voice_id: custom-hindi-voice
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden field applied, the rest of the profile kept.
	assert.Equal(t, "custom-hindi-voice", cfg.Languages["hi"].VoiceID)
	assert.Equal(t, "eleven_multilingual_v2", cfg.Languages["hi"].ModelID)
	assert.Equal(t, "Hindi", cfg.Languages["hi"].Name)

	// Untouched languages keep their defaults.
	assert.Equal(t, "21m00Tcm4TlvDq8ikWAM", cfg.Languages["en"].VoiceID)
}

func TestLoad_MissingLogicURLIsError(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logic.url")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VAANI_LOGIC_URL", "http://env.local/chat")
	t.Setenv("VAANI_SERVER_PORT", "9999")

	cfg, err := Load(writeConfig(t, "logging:\n  level: info\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://env.local/chat", cfg.Logic.URL)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoad_ResolvesEnvRefsInSecrets(t *testing.T) {
	t.Setenv("TEST_GROQ_KEY", "sk-secret")
	path := writeConfig(t, `
logic:
  url: http://logic.local/chat
speech:
  api_key: ${TEST_GROQ_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", cfg.Speech.APIKey)
}

func TestResolveEnvRef(t *testing.T) {
	t.Setenv("SOME_VAR", "value")
	assert.Equal(t, "value", resolveEnvRef("${SOME_VAR}"))
	assert.Equal(t, "literal", resolveEnvRef("literal"))
	// Unset references stay as-is so the failure is visible downstream.
	assert.Equal(t, "${UNSET_VAR_XYZ}", resolveEnvRef("${UNSET_VAR_XYZ}"))
}
