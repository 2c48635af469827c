package ratelimit

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// cleanupProbability is the fraction of Check calls that opportunistically
// purge expired entries.
const cleanupProbability = 0.01

// Limiter enforces a per-identity daily request quota. The in-memory map is
// the source of truth for admission decisions; the Store only provides
// durability across restarts, so persistence failures are logged and
// swallowed rather than retracting a decision already made.
type Limiter struct {
	cfg   Config
	store Store

	mu      sync.Mutex
	entries map[string]Entry

	now   func() time.Time
	randf func() float64
}

// New creates a Limiter and hydrates it from the store. A failed load is
// logged and counting starts empty rather than blocking startup.
func New(ctx context.Context, cfg Config, store Store) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		store:   store,
		entries: make(map[string]Entry),
		now:     time.Now,
		randf:   rand.Float64,
	}

	if entries, err := store.Load(ctx); err != nil {
		slog.Warn("rate limiter: loading persisted entries failed, starting empty", "error", err)
	} else {
		l.entries = entries
	}

	return l
}

// Limit returns the configured daily maximum.
func (l *Limiter) Limit() int { return l.cfg.MaxRequestsPerDay }

// Window returns the counting window length.
func (l *Limiter) Window() time.Duration { return l.cfg.Window }

// Check performs an admission check for the given identity, consuming one
// quota unit when allowed. Denials never write.
func (l *Limiter) Check(ctx context.Context, identity string) Result {
	now := l.now()
	nowMs := now.UnixMilli()
	today := now.UTC().Format("2006-01-02")
	key := identity + "-" + today
	windowMs := l.cfg.Window.Milliseconds()

	// Opportunistic cleanup on a small fraction of calls. Best-effort;
	// must never fail the calling request.
	if l.randf() < cleanupProbability {
		l.cleanup(ctx, nowMs)
	}

	l.mu.Lock()
	entry, ok := l.entries[key]

	if !ok || entry.Date != today {
		// First request of the day for this identity (or a stale entry
		// left over under the same key).
		entry = Entry{
			IP:           identity,
			Date:         today,
			Count:        1,
			FirstRequest: nowMs,
			LastRequest:  nowMs,
		}
		l.entries[key] = entry
		l.mu.Unlock()

		l.persist(ctx, key, entry)
		return Result{
			Allowed:   true,
			Current:   1,
			Remaining: l.cfg.MaxRequestsPerDay - 1,
			ResetTime: nowMs + windowMs,
		}
	}

	if entry.Count >= l.cfg.MaxRequestsPerDay {
		l.mu.Unlock()
		return Result{
			Allowed:   false,
			Current:   entry.Count,
			Remaining: 0,
			ResetTime: entry.FirstRequest + windowMs,
		}
	}

	entry.Count++
	entry.LastRequest = nowMs
	l.entries[key] = entry
	l.mu.Unlock()

	l.persist(ctx, key, entry)
	return Result{
		Allowed:   true,
		Current:   entry.Count,
		Remaining: l.cfg.MaxRequestsPerDay - entry.Count,
		ResetTime: entry.FirstRequest + windowMs,
	}
}

// Status reports the identity's current quota without consuming any of it.
func (l *Limiter) Status(identity string) Status {
	now := l.now()
	today := now.UTC().Format("2006-01-02")
	key := identity + "-" + today
	windowMs := l.cfg.Window.Milliseconds()

	l.mu.Lock()
	entry, ok := l.entries[key]
	l.mu.Unlock()

	if !ok || entry.Date != today {
		return Status{
			Current:   0,
			Remaining: l.cfg.MaxRequestsPerDay,
			ResetTime: now.UnixMilli() + windowMs,
			Limit:     l.cfg.MaxRequestsPerDay,
		}
	}

	remaining := l.cfg.MaxRequestsPerDay - entry.Count
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Current:   entry.Count,
		Remaining: remaining,
		ResetTime: entry.FirstRequest + windowMs,
		Limit:     l.cfg.MaxRequestsPerDay,
	}
}

func (l *Limiter) persist(ctx context.Context, key string, entry Entry) {
	if err := l.store.Save(ctx, key, entry); err != nil {
		slog.Warn("rate limiter: persisting entry failed, continuing with in-memory count",
			"key", key, "error", err)
	}
}

// cleanup purges entries whose last request is older than the window.
func (l *Limiter) cleanup(ctx context.Context, nowMs int64) {
	cutoff := nowMs - l.cfg.Window.Milliseconds()

	l.mu.Lock()
	var expired []string
	for key, entry := range l.entries {
		if entry.LastRequest < cutoff {
			delete(l.entries, key)
			expired = append(expired, key)
		}
	}
	l.mu.Unlock()

	for _, key := range expired {
		if err := l.store.Delete(ctx, key); err != nil {
			slog.Warn("rate limiter: deleting expired entry failed", "key", key, "error", err)
		}
	}
}
