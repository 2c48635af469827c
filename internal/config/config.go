package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	OpenAI    OpenAIConfig
	Resend    ResendConfig
	RateLimit RateLimitConfig
	Chat      ChatConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type ResendConfig struct {
	APIKey    string
	FromEmail string
	ToEmail   string
}

// RateLimitConfig controls per-IP daily admission to the chat endpoint.
// Backend selects the durable store: "file" (single JSON document) or "redis".
type RateLimitConfig struct {
	MaxRequestsPerDay int
	Window            time.Duration
	Backend           string
	FilePath          string
}

type ChatConfig struct {
	PersonalityPath string
	StreamTimeout   time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: k.String("server.host"),
			Port: k.Int("server.port"),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		OpenAI: OpenAIConfig{
			APIKey: k.String("openai.api.key"),
			Model:  k.String("openai.model"),
		},
		Resend: ResendConfig{
			APIKey:    k.String("resend.api.key"),
			FromEmail: k.String("resend.from.email"),
			ToEmail:   k.String("resend.to.email"),
		},
		RateLimit: RateLimitConfig{
			MaxRequestsPerDay: k.Int("ratelimit.max.requests.per.day"),
			Backend:           k.String("ratelimit.backend"),
			FilePath:          k.String("ratelimit.file.path"),
		},
		Chat: ChatConfig{
			PersonalityPath: k.String("chat.personality.path"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	if origins := k.String("cors.allowed.origins"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, o)
			}
		}
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Resend.FromEmail == "" {
		cfg.Resend.FromEmail = "Portfolio Contact Form <onboarding@resend.dev>"
	}
	if cfg.Resend.ToEmail == "" {
		cfg.Resend.ToEmail = "viniciusgdoliveira@gmail.com"
	}
	if cfg.RateLimit.MaxRequestsPerDay == 0 {
		cfg.RateLimit.MaxRequestsPerDay = 50
	}
	if cfg.RateLimit.Backend == "" {
		cfg.RateLimit.Backend = "file"
	}
	if cfg.RateLimit.FilePath == "" {
		cfg.RateLimit.FilePath = "data/rate-limit.json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	windowStr := k.String("ratelimit.window")
	if windowStr == "" {
		windowStr = "24h"
	}
	cfg.RateLimit.Window, err = time.ParseDuration(windowStr)
	if err != nil {
		return nil, fmt.Errorf("parsing rate limit window: %w", err)
	}

	timeoutStr := k.String("chat.stream.timeout")
	if timeoutStr == "" {
		timeoutStr = "2m"
	}
	cfg.Chat.StreamTimeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("parsing chat stream timeout: %w", err)
	}

	return cfg, nil
}
