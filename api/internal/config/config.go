package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8000"`

	GeminiAPIKey      string   `env:"GEMINI_API_KEY"`
	LegacyAPIKey      string   `env:"API_KEY"`
	GeminiModel       string   `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiTemperature *float32 `env:"GEMINI_TEMPERATURE"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	WebhookURL       string `env:"WEBHOOK_URL"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LOG_FILE"`
}

// Load reads ./.env when present, then the process environment.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom loads envfile (if it exists) without overriding variables that are
// already set, then parses the environment. A missing API key is not an
// error: the caller starts degraded.
func LoadFrom(envfile string) (*Config, error) {
	if envfile != "" {
		if _, err := os.Stat(envfile); err == nil {
			if err := godotenv.Load(envfile); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", envfile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", envfile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = strings.TrimSpace(cfg.LegacyAPIKey)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("config: REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}

// HasGeminiKey reports whether a credential was configured.
func (c *Config) HasGeminiKey() bool { return c.GeminiAPIKey != "" }

// Addr is the listen address for the HTTP API.
func (c *Config) Addr() string { return "0.0.0.0:" + c.Port }
