package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter(1, 3)
	handler := RateLimitMiddleware(limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(path, remote string) int {
		req := httptest.NewRequest("GET", path, nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, send("/api/v1/store/items", "192.168.1.100:1234"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, send("/api/v1/store/items", "192.168.1.100:1234"))

	// Other clients keep their own bucket
	assert.Equal(t, http.StatusOK, send("/api/v1/store/items", "192.168.1.101:1234"))

	// Probes are never limited
	assert.Equal(t, http.StatusOK, send("/healthz", "192.168.1.100:1234"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0, 0)
	for i := 0; i < 1000; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(5, 5)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")
	limiter.Allow("10.0.0.2")
	assert.Equal(t, 2, limiter.visitorCount())

	now = now.Add(VisitorIdleTTL + VisitorSweepInterval)
	limiter.Allow("10.0.0.3")

	assert.Equal(t, 1, limiter.visitorCount())
}
