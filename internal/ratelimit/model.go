package ratelimit

import "time"

// Entry is the persisted per-(IP, day) request counter. Timestamps are
// milliseconds since epoch to match the persisted JSON layout.
type Entry struct {
	IP           string `json:"ip"`
	Date         string `json:"date"` // YYYY-MM-DD
	Count        int    `json:"count"`
	FirstRequest int64  `json:"firstRequest"`
	LastRequest  int64  `json:"lastRequest"`
}

// Config holds the process-wide limiter settings, immutable after load.
type Config struct {
	MaxRequestsPerDay int
	Window            time.Duration
}

// Result is the outcome of an admission check.
type Result struct {
	Allowed   bool  `json:"allowed"`
	Current   int   `json:"current"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"resetTime"`
}

// Status is the read-only view of an identity's quota.
type Status struct {
	Current   int   `json:"current"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"resetTime"`
	Limit     int   `json:"limit"`
}
