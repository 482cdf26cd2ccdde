package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// manualClock управляемое время для limiter
type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time { return c.t }

func newTestLimiter(t *testing.T, rate int, window time.Duration) (*RateLimiter, *manualClock) {
	t.Helper()
	clock := &manualClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(rate, window)
	rl.now = clock.Now
	t.Cleanup(rl.Stop)
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 5, time.Minute)
		for i := 0; i < 5; i++ {
			allowed, _ := rl.Allow("10.0.0.1")
			assert.True(t, allowed, fmt.Sprintf("request %d should be allowed", i+1))
		}
	})

	t.Run("over limit reports wait", func(t *testing.T) {
		rl, clock := newTestLimiter(t, 2, time.Minute)
		rl.Allow("10.0.0.1")
		clock.t = clock.t.Add(20 * time.Second)
		rl.Allow("10.0.0.1")

		allowed, wait := rl.Allow("10.0.0.1")
		assert.False(t, allowed)
		assert.Equal(t, 40*time.Second, wait)
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)
		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
		allowed, _ = rl.Allow("10.0.0.1")
		assert.False(t, allowed)
		allowed, _ = rl.Allow("10.0.0.2")
		assert.True(t, allowed)
	})

	t.Run("new window resets", func(t *testing.T) {
		rl, clock := newTestLimiter(t, 1, time.Minute)
		rl.Allow("10.0.0.1")
		clock.t = clock.t.Add(time.Minute)
		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed)
	})
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl, clock := newTestLimiter(t, 10, time.Minute)
	rl.Allow("10.0.0.1")
	clock.t = clock.t.Add(90 * time.Second)
	rl.Allow("10.0.0.2")

	clock.t = clock.t.Add(60 * time.Second)
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "10.0.0.1")
	assert.Contains(t, rl.buckets, "10.0.0.2")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)
	handler := RateLimitMiddleware(rl, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("192.168.1.1:1000").Code)
	// другой порт того же хоста считается тем же клиентом
	assert.Equal(t, http.StatusOK, send("192.168.1.1:2000").Code)

	w := send("192.168.1.1:3000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	assert.Equal(t, http.StatusOK, send("192.168.1.2:1000").Code)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xRealIP    string
		expectedIP string
	}{
		{name: "forwarded single", remoteAddr: "10.0.0.1:12345", xff: "192.168.1.1", expectedIP: "192.168.1.1"},
		{name: "forwarded chain", remoteAddr: "10.0.0.1:12345", xff: "192.168.1.1, 10.0.0.2", expectedIP: "192.168.1.1"},
		{name: "real ip", remoteAddr: "10.0.0.1:12345", xRealIP: "192.168.2.1", expectedIP: "192.168.2.1"},
		{name: "forwarded wins", remoteAddr: "10.0.0.1:12345", xff: "192.168.1.1", xRealIP: "192.168.2.1", expectedIP: "192.168.1.1"},
		{name: "remote addr host", remoteAddr: "192.168.3.1:54321", expectedIP: "192.168.3.1"},
		{name: "remote addr without port", remoteAddr: "192.168.3.1", expectedIP: "192.168.3.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			assert.Equal(t, tt.expectedIP, clientIP(req))
		})
	}
}
