// Package config loads server configuration from defaults, an optional .env
// file, and SKILLBRIDGE_* environment variables (highest precedence).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Auth      AuthConfig
	Generator GeneratorConfig
	Storage   StorageConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
}

type AuthConfig struct {
	// JWTSecret signs API tokens. Required; there is no insecure default.
	JWTSecret string
	// TokenTTLHours is the issued-token lifetime.
	TokenTTLHours int
}

type GeneratorConfig struct {
	// BaseURL of an OpenAI-compatible endpoint. Generation is enabled only
	// when APIKey is set; otherwise static fallbacks serve every request.
	BaseURL string
	APIKey  string
	Model   string
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

// Enabled reports whether a generation backend is configured.
func (g GeneratorConfig) Enabled() bool {
	return g.APIKey != ""
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Port: 4600},
		Auth: AuthConfig{
			TokenTTLHours: 7 * 24,
		},
		Generator: GeneratorConfig{
			BaseURL: "https://api.openai.com",
			Model:   "gpt-4o-mini",
		},
		Storage: StorageConfig{DataDir: defaultDataDir()},
		Log:     LogConfig{Level: "info"},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skillbridge"
	}
	return filepath.Join(home, ".skillbridge")
}

// Load reads configuration. A .env file in the working directory is applied
// first (missing files are fine), then environment variables override
// defaults. The JWT secret is required.
func Load() (Config, error) {
	_ = godotenv.Load()
	return loadWith(os.Getenv)
}

func loadWith(getenv func(string) string) (Config, error) {
	cfg := defaults()

	if v := getenv("SKILLBRIDGE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SKILLBRIDGE_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := getenv("SKILLBRIDGE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := getenv("SKILLBRIDGE_TOKEN_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SKILLBRIDGE_TOKEN_TTL_HOURS %q: %w", v, err)
		}
		cfg.Auth.TokenTTLHours = hours
	}
	if v := getenv("SKILLBRIDGE_OPENAI_BASE_URL"); v != "" {
		cfg.Generator.BaseURL = v
	}
	if v := getenv("SKILLBRIDGE_OPENAI_API_KEY"); v != "" {
		cfg.Generator.APIKey = v
	}
	if v := getenv("SKILLBRIDGE_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v := getenv("SKILLBRIDGE_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := getenv("SKILLBRIDGE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing required config: JWT secret. " +
			"Set it via environment variable SKILLBRIDGE_JWT_SECRET")
	}

	return cfg, nil
}
