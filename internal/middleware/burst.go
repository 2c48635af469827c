package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/viniciusgdoliveira/portfolio-api/internal/ratelimit"
)

// BurstLimiter provides per-IP sliding-window rate limiting backed by Redis
// sorted sets. It guards low-volume endpoints (the contact form) against
// bursts; the chat endpoint uses the daily quota limiter instead.
type BurstLimiter struct {
	client    redis.Cmdable
	maxReqs   int
	windowSec int
}

// NewBurstLimiter creates a limiter that allows maxReqs per windowSec seconds.
func NewBurstLimiter(client redis.Cmdable, maxReqs, windowSec int) *BurstLimiter {
	return &BurstLimiter{client: client, maxReqs: maxReqs, windowSec: windowSec}
}

// Middleware returns an HTTP middleware that enforces the burst limit.
// On Redis errors it fails open (allows the request through).
func (bl *BurstLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ratelimit.ClientIP(r)
		key := "burst:contact:" + ip

		allowed, err := bl.allow(r.Context(), key)
		if err != nil {
			slog.Warn("burst limiter: redis error, failing open", "error", err, "ip", ip)
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(bl.windowSec))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (bl *BurstLimiter) allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()
	windowStart := float64(now.Add(-time.Duration(bl.windowSec) * time.Second).UnixMilli())
	member := fmt.Sprintf("%d", now.UnixNano())
	score := float64(now.UnixMilli())

	pipe := bl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("%f", windowStart))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: score, Member: member})
	pipe.Expire(ctx, key, time.Duration(bl.windowSec)*time.Second+time.Second)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}

	return countCmd.Val() < int64(bl.maxReqs), nil
}
