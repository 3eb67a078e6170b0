package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeLimiter struct {
	calls int
	max   int
	err   error
	keys  []string
}

func (f *fakeLimiter) Limit() int { return f.max }

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return false, 0, time.Time{}, f.err
	}
	f.calls++
	return f.calls <= f.max, max(0, f.max-f.calls), time.Now().Add(time.Minute), nil
}

func TestRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("rejects over budget", func(t *testing.T) {
		// Setup
		limiter := &fakeLimiter{max: 1}
		h := RateLimitMiddleware(limiter)(ok)
		req := httptest.NewRequest(http.MethodPost, "/api/imports", nil)
		req.RemoteAddr = "10.0.0.1:5555"

		// Execute
		first := httptest.NewRecorder()
		h.ServeHTTP(first, req)
		second := httptest.NewRecorder()
		h.ServeHTTP(second, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, first.Code)
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.1"}, limiter.keys)
	})

	t.Run("fails open", func(t *testing.T) {
		// Setup
		h := RateLimitMiddleware(&fakeLimiter{max: 1, err: errors.New("redis down")})(ok)

		// Execute
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/imports", nil))

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
