package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/viniciusgdoliveira/portfolio-api/internal/api"
	"github.com/viniciusgdoliveira/portfolio-api/internal/chat"
	"github.com/viniciusgdoliveira/portfolio-api/internal/config"
	"github.com/viniciusgdoliveira/portfolio-api/internal/contact"
	"github.com/viniciusgdoliveira/portfolio-api/internal/content"
	"github.com/viniciusgdoliveira/portfolio-api/internal/middleware"
	"github.com/viniciusgdoliveira/portfolio-api/internal/openai"
	"github.com/viniciusgdoliveira/portfolio-api/internal/personality"
	"github.com/viniciusgdoliveira/portfolio-api/internal/ratelimit"
	iredis "github.com/viniciusgdoliveira/portfolio-api/internal/redis"
	"github.com/viniciusgdoliveira/portfolio-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("validating config", "error", err)
		os.Exit(1)
	}

	if err := content.Validate(); err != nil {
		slog.Error("validating embedded content", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Rate-limit store
	var store ratelimit.Store
	var contactBurstLimit func(http.Handler) http.Handler

	switch cfg.RateLimit.Backend {
	case "redis":
		redisClient, err := iredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Error("connecting to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		store = ratelimit.NewRedisStore(redisClient, cfg.RateLimit.Window)
		// Redis is available, so the contact form also gets burst protection.
		contactBurstLimit = middleware.NewBurstLimiter(redisClient, 5, 60).Middleware
	default:
		store = ratelimit.NewFileStore(cfg.RateLimit.FilePath)
	}

	limiter := ratelimit.New(ctx, ratelimit.Config{
		MaxRequestsPerDay: cfg.RateLimit.MaxRequestsPerDay,
		Window:            cfg.RateLimit.Window,
	}, store)

	// Persona
	persona, err := personality.Load(cfg.Chat.PersonalityPath)
	if err != nil {
		slog.Error("loading personality", "error", err)
		os.Exit(1)
	}

	// Chat
	streamer := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	chatHandler := chat.NewHandler(limiter, streamer, persona, func() string {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
		return cfg.OpenAI.APIKey
	}, cfg.Chat.StreamTimeout)

	// Contact
	contactHandler := contact.NewHandler(cfg.Resend)

	// Router
	router := api.NewRouter(api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
		ContactBurstLimit:  contactBurstLimit,
		RateLimitStore:     store,
	}, api.HandlerSet{
		ChatComplete:  chatHandler.HandleChat,
		ChatStatus:    chatHandler.HandleStatus,
		ContactSubmit: contactHandler.HandleSubmit,
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
