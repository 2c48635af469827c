package middleware

import "net/http"

// SecurityHeaders sets the headers appropriate for an API that serves only
// JSON and SSE, never documents.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		// Responses carry per-IP quota state; uncacheable by default, the
		// static content handlers opt back in.
		h.Set("Cache-Control", "no-store")
		// Keeps buffering reverse proxies from holding back SSE frames.
		h.Set("X-Accel-Buffering", "no")
		next.ServeHTTP(w, r)
	})
}
