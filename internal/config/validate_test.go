package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
		OpenAI: OpenAIConfig{APIKey: "sk-test-key", Model: "gpt-4o-mini"},
		RateLimit: RateLimitConfig{
			MaxRequestsPerDay: 50,
			Window:            24 * time.Hour,
			Backend:           "file",
			FilePath:          "data/rate-limit.json",
		},
		Chat: ChatConfig{StreamTimeout: 2 * time.Minute},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidate_BadServerPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Fatalf("expected SERVER_PORT error, got: %v", err)
	}
}

func TestValidate_ZeroDailyLimit(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.MaxRequestsPerDay = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "RATELIMIT_MAX_REQUESTS_PER_DAY") {
		t.Fatalf("expected RATELIMIT_MAX_REQUESTS_PER_DAY error, got: %v", err)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Backend = "dynamo"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "RATELIMIT_BACKEND") {
		t.Fatalf("expected RATELIMIT_BACKEND error, got: %v", err)
	}
}

func TestValidate_FileBackendNeedsPath(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.FilePath = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "RATELIMIT_FILE_PATH") {
		t.Fatalf("expected RATELIMIT_FILE_PATH error, got: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = -1
	cfg.RateLimit.Window = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") || !strings.Contains(err.Error(), "RATELIMIT_WINDOW") {
		t.Fatalf("expected both errors reported, got: %v", err)
	}
}
