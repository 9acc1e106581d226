package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client configuration. Precedence, lowest to highest:
// built-in defaults, .env file, environment variables, JSON config file.
type Config struct {
	APIBaseURL     string `json:"api_base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Environment    string `json:"environment"`
	LogLevel       string `json:"log_level"`
	CredentialsDir string `json:"credentials_dir"`
}

// Load reads configuration. An empty configPath falls back to
// GEOFFRAY_CONFIG_PATH, then to geoffray-config.json in the working
// directory; a missing config file is fine.
func Load(configPath string) (*Config, error) {
	// Populate the process environment from .env if one exists.
	godotenv.Load()

	cfg := &Config{
		APIBaseURL:     "http://localhost:8080",
		TimeoutSeconds: 10,
		Environment:    "development",
		LogLevel:       "info",
		CredentialsDir: "~/.geoffray",
	}

	if v := os.Getenv("GEOFFRAY_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GEOFFRAY_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("GEOFFRAY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GEOFFRAY_CREDENTIALS_DIR"); v != "" {
		cfg.CredentialsDir = v
	}

	if configPath == "" {
		configPath = os.Getenv("GEOFFRAY_CONFIG_PATH")
		if configPath == "" {
			configPath = "geoffray-config.json"
		}
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
