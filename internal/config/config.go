// Package config handles loading and validating the vaani configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the vaani daemon.
type Config struct {
	Server    ServerConfig               `mapstructure:"server"`
	Speech    SpeechConfig               `mapstructure:"speech"`
	Logic     LogicConfig                `mapstructure:"logic"`
	TTS       TTSConfig                  `mapstructure:"tts"`
	Storage   StorageConfig              `mapstructure:"storage"`
	Languages map[string]LanguageProfile `mapstructure:"languages"`
	Logging   LoggingConfig              `mapstructure:"logging"`
}

// ServerConfig holds the API and health server settings.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	HealthPort     int `mapstructure:"health_port"`
	GRPCHealthPort int `mapstructure:"grpc_health_port"`
}

// SpeechConfig holds Groq API settings for transcription and text generation.
type SpeechConfig struct {
	APIKey             string `mapstructure:"api_key"`
	BaseURL            string `mapstructure:"base_url"`
	TranscriptionModel string `mapstructure:"transcription_model"`
	CompletionModel    string `mapstructure:"completion_model"`
}

// LogicConfig holds settings for the external welfare-scheme logic service.
type LogicConfig struct {
	// URL is the chat endpoint of the logic service. Form retrieval uses the
	// same host with the trailing /chat path segment stripped.
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// TTSConfig holds ElevenLabs speech synthesis settings.
type TTSConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// StorageConfig holds the on-disk store locations.
type StorageConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
	OutputDir string `mapstructure:"output_dir"`
	FormsDir  string `mapstructure:"forms_dir"`
}

// LanguageProfile maps a language code to its synthesis voice/model and the
// display name used in translation prompts.
type LanguageProfile struct {
	VoiceID string `mapstructure:"voice_id"`
	ModelID string `mapstructure:"model_id"`
	Name    string `mapstructure:"name"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// defaultLanguages is the built-in Language Profile table. Config file entries
// are merged over it, so partial overrides keep the remaining defaults.
var defaultLanguages = map[string]LanguageProfile{
	"hi": {VoiceID: "pNInz6obpgDQGcFmaJgB", ModelID: "eleven_multilingual_v2", Name: "Hindi"},
	"en": {VoiceID: "21m00Tcm4TlvDq8ikWAM", ModelID: "eleven_monolingual_v1", Name: "English"},
	"bn": {VoiceID: "pNInz6obpgDQGcFmaJgB", ModelID: "eleven_multilingual_v2", Name: "Bengali"},
	"te": {VoiceID: "pNInz6obpgDQGcFmaJgB", ModelID: "eleven_multilingual_v2", Name: "Telugu"},
	"mr": {VoiceID: "pNInz6obpgDQGcFmaJgB", ModelID: "eleven_multilingual_v2", Name: "Marathi"},
	"ta": {VoiceID: "pNInz6obpgDQGcFmaJgB", ModelID: "eleven_multilingual_v2", Name: "Tamil"},
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./vaani.yaml, ./configs/vaani.yaml, /etc/vaani/vaani.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.grpc_health_port", 0)
	v.SetDefault("speech.api_key", "")
	v.SetDefault("speech.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("speech.transcription_model", "whisper-large-v3")
	v.SetDefault("speech.completion_model", "llama3-8b-8192")
	v.SetDefault("logic.url", "")
	v.SetDefault("logic.timeout_seconds", 60)
	v.SetDefault("tts.api_key", "")
	v.SetDefault("tts.base_url", "https://api.elevenlabs.io")
	v.SetDefault("tts.timeout_seconds", 30)
	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.output_dir", "outputs")
	v.SetDefault("storage.forms_dir", "forms")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("vaani")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/vaani")
	}

	// Environment variables: VAANI_SERVER_PORT, VAANI_LOGIC_URL, etc.
	v.SetEnvPrefix("VAANI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Merge configured language profiles over the built-in table.
	languages := make(map[string]LanguageProfile, len(defaultLanguages))
	for code, profile := range defaultLanguages {
		languages[code] = profile
	}
	for code, profile := range cfg.Languages {
		base := languages[code]
		if profile.VoiceID != "" {
			base.VoiceID = profile.VoiceID
		}
		if profile.ModelID != "" {
			base.ModelID = profile.ModelID
		}
		if profile.Name != "" {
			base.Name = profile.Name
		}
		languages[code] = base
	}
	cfg.Languages = languages

	// Resolve env var references in sensitive fields (e.g., "${GROQ_API_KEY}")
	cfg.Speech.APIKey = resolveEnvRef(cfg.Speech.APIKey)
	cfg.TTS.APIKey = resolveEnvRef(cfg.TTS.APIKey)
	cfg.Logic.URL = resolveEnvRef(cfg.Logic.URL)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Logic.URL == "" {
		return fmt.Errorf("logic.url must be set (chat endpoint of the welfare-scheme service)")
	}
	if c.Logic.TimeoutSeconds <= 0 {
		return fmt.Errorf("logic.timeout_seconds must be positive")
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
