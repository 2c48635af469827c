package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Validate checks Config for production-critical problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	// Port ranges
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT must be 1-65535, got %d", c.Server.Port))
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Sprintf("REDIS_PORT must be 1-65535, got %d", c.Redis.Port))
	}

	// Rate limiting
	if c.RateLimit.MaxRequestsPerDay < 1 {
		errs = append(errs, fmt.Sprintf("RATELIMIT_MAX_REQUESTS_PER_DAY must be positive, got %d", c.RateLimit.MaxRequestsPerDay))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, "RATELIMIT_WINDOW must be a positive duration")
	}
	switch c.RateLimit.Backend {
	case "file", "redis":
	default:
		errs = append(errs, fmt.Sprintf("RATELIMIT_BACKEND must be \"file\" or \"redis\", got %q", c.RateLimit.Backend))
	}
	if c.RateLimit.Backend == "file" && c.RateLimit.FilePath == "" {
		errs = append(errs, "RATELIMIT_FILE_PATH is required with the file backend")
	}

	if c.Chat.StreamTimeout <= 0 {
		errs = append(errs, "CHAT_STREAM_TIMEOUT must be a positive duration")
	}

	// The OpenAI key is checked again per request so it can be rotated at
	// runtime; an empty value here only downgrades the chat endpoint.
	if c.OpenAI.APIKey == "" || strings.HasPrefix(c.OpenAI.APIKey, "sk-dummy") {
		slog.Warn("OPENAI_API_KEY is missing or a placeholder, chat completions will fail closed")
	}
	if c.Resend.APIKey == "" {
		slog.Warn("RESEND_API_KEY is empty, contact form will return 503")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
