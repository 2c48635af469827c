package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP_PrefersCDNHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("CF-Connecting-IP", "1.1.1.1")
	r.Header.Set("X-Real-IP", "2.2.2.2")
	r.Header.Set("X-Forwarded-For", "3.3.3.3, 4.4.4.4")

	assert.Equal(t, "1.1.1.1", ClientIP(r))
}

func TestClientIP_RealIPFallback(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Real-IP", "2.2.2.2")
	r.Header.Set("X-Forwarded-For", "3.3.3.3")

	assert.Equal(t, "2.2.2.2", ClientIP(r))
}

func TestClientIP_ForwardedForFirstHop(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", " 3.3.3.3 , 4.4.4.4")

	assert.Equal(t, "3.3.3.3", ClientIP(r))
}

func TestClientIP_UnknownBucket(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	assert.Equal(t, UnknownIdentity, ClientIP(r))
}
