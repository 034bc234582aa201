package config

import (
	"strings"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadWith(envMap(map[string]string{
		"SKILLBRIDGE_JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("loadWith() error: %v", err)
	}

	if cfg.Server.Port != 4600 {
		t.Errorf("Port = %d, want 4600", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTLHours != 168 {
		t.Errorf("TokenTTLHours = %d, want 168", cfg.Auth.TokenTTLHours)
	}
	if cfg.Generator.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", cfg.Generator.Model)
	}
	if cfg.Generator.Enabled() {
		t.Error("Generator.Enabled() = true without API key")
	}
	if !strings.HasSuffix(cfg.Storage.DataDir, ".skillbridge") {
		t.Errorf("DataDir = %q, want .skillbridge default", cfg.Storage.DataDir)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := loadWith(envMap(map[string]string{
		"SKILLBRIDGE_JWT_SECRET":      "s3cret",
		"SKILLBRIDGE_PORT":            "8080",
		"SKILLBRIDGE_TOKEN_TTL_HOURS": "24",
		"SKILLBRIDGE_OPENAI_API_KEY":  "sk-test",
		"SKILLBRIDGE_MODEL":           "gpt-4o",
		"SKILLBRIDGE_DATA_DIR":        "/tmp/sb",
		"SKILLBRIDGE_LOG_LEVEL":       "debug",
	}))
	if err != nil {
		t.Fatalf("loadWith() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("TokenTTLHours = %d, want 24", cfg.Auth.TokenTTLHours)
	}
	if !cfg.Generator.Enabled() {
		t.Error("Generator.Enabled() = false with API key set")
	}
	if cfg.Generator.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.Generator.Model)
	}
	if cfg.Storage.DataDir != "/tmp/sb" {
		t.Errorf("DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadMissingJWTSecret(t *testing.T) {
	_, err := loadWith(envMap(nil))
	if err == nil {
		t.Fatal("expected error without JWT secret")
	}
	if !strings.Contains(err.Error(), "SKILLBRIDGE_JWT_SECRET") {
		t.Errorf("error = %v, should name the missing variable", err)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	_, err := loadWith(envMap(map[string]string{
		"SKILLBRIDGE_JWT_SECRET": "s3cret",
		"SKILLBRIDGE_PORT":       "not-a-port",
	}))
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}
