package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}

func newLimitedRouter(cfg RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(RateLimitMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func hit(r http.Handler) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Should allow up to the limit then answer 429", func(t *testing.T) {
		r := newLimitedRouter(ContactRateLimitConfig(2, time.Minute))

		first := hit(r)
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

		assert.Equal(t, http.StatusOK, hit(r).Code)

		blocked := hit(r)
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
		assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
		assert.Contains(t, blocked.Body.String(), "Rate limit exceeded")
	})

	t.Run("Should fall back to memory when the store fails open", func(t *testing.T) {
		cfg := GlobalRateLimitConfig(1, time.Minute)
		cfg.Counter = failingCounter{}
		r := newLimitedRouter(cfg)

		assert.Equal(t, http.StatusOK, hit(r).Code)
		assert.Equal(t, http.StatusTooManyRequests, hit(r).Code)
	})

	t.Run("Should answer 503 when the store fails closed", func(t *testing.T) {
		cfg := GlobalRateLimitConfig(10, time.Minute)
		cfg.Counter = failingCounter{}
		cfg.FailClosed = true

		w := hit(newLimitedRouter(cfg))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMemoryCounter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryCounter()
	m.now = func() time.Time { return now }

	count, resetAt, err := m.Incr(ctx, "a", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, now.Add(time.Minute), resetAt)

	count, _, _ = m.Incr(ctx, "a", time.Minute)
	assert.Equal(t, 2, count)

	_, _, _ = m.Incr(ctx, "b", time.Minute)
	assert.Equal(t, 2, m.Len())

	// New window after expiry
	now = now.Add(2 * time.Minute)
	count, _, _ = m.Incr(ctx, "a", time.Minute)
	assert.Equal(t, 1, count)

	m.Sweep()
	assert.Equal(t, 1, m.Len())
}
