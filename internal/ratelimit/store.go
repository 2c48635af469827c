package ratelimit

import "context"

// Store persists rate-limit entries keyed by "<identity>-<YYYY-MM-DD>".
// The limiter keeps its own in-memory view and treats the store as
// durability only, so implementations never make admission decisions.
type Store interface {
	// Load returns all persisted entries. Called once at limiter startup.
	Load(ctx context.Context) (map[string]Entry, error)
	// Save persists a single entry synchronously.
	Save(ctx context.Context, key string, entry Entry) error
	// Delete removes an expired entry. Best-effort.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
