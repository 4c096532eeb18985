package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Script  ScriptConfig
	TTS     TTSConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type ScriptConfig struct {
	Backend         string // "openai", "anthropic" or "assistant"
	OpenAIKey       string
	AnthropicKey    string
	Model           string
	Language        string
	MaxContentChars int
	RunPollAttempts int
	RunPollInterval time.Duration
}

type TTSConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string
	Voice   string
}

type StorageConfig struct {
	UploadDir      string
	DownloadDir    string
	WebDir         string
	MaxUploadBytes int64
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxContent, err := getEnvInt("MAX_CONTENT_CHARS", 12000)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_CONTENT_CHARS: %w", err)
	}

	pollAttempts, err := getEnvInt("RUN_POLL_ATTEMPTS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_POLL_ATTEMPTS: %w", err)
	}

	pollIntervalMs, err := getEnvInt("RUN_POLL_INTERVAL_MS", 2000)
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_POLL_INTERVAL_MS: %w", err)
	}

	maxUploadMB, err := getEnvInt("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Script: ScriptConfig{
			Backend:         getEnv("SCRIPT_BACKEND", "openai"),
			OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:    getEnv("ANTHROPIC_API_KEY", ""),
			Model:           getEnv("SCRIPT_MODEL", "gpt-4o"),
			Language:        getEnv("LECTURE_LANGUAGE", "Hebrew"),
			MaxContentChars: maxContent,
			RunPollAttempts: pollAttempts,
			RunPollInterval: time.Duration(pollIntervalMs) * time.Millisecond,
		},
		TTS: TTSConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("TTS_BASE_URL", ""),
			Model:   getEnv("TTS_MODEL", "tts-1"),
			Voice:   getEnv("TTS_VOICE", "alloy"),
		},
		Storage: StorageConfig{
			UploadDir:      getEnv("UPLOAD_DIR", os.TempDir()),
			DownloadDir:    getEnv("DOWNLOAD_DIR", "downloads"),
			WebDir:         getEnv("WEB_DIR", "web"),
			MaxUploadBytes: int64(maxUploadMB) << 20,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	switch c.Script.Backend {
	case "openai", "assistant":
		if c.Script.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case "anthropic":
		if c.Script.AnthropicKey == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
		if c.TTS.APIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown SCRIPT_BACKEND: %q", c.Script.Backend)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
