package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownIdentity is the shared bucket for requests with no usable IP
// headers. All such clients count against one quota.
const UnknownIdentity = "unknown"

// ClientIP derives the rate-limiting identity from proxy headers, in order
// of trust: the CDN's connecting IP, then the reverse proxy's real IP, then
// the first forwarded-for hop.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	return UnknownIdentity
}
