package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedEngine(perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimit(perMinute))
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func ping(engine *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	engine := rateLimitedEngine(0)

	for i := 0; i < 50; i++ {
		w := ping(engine)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitThrottles(t *testing.T) {
	engine := rateLimitedEngine(3)

	for i := 0; i < 3; i++ {
		w := ping(engine)
		require.Equal(t, http.StatusOK, w.Code, "request %d within the limit", i)
		assert.Equal(t, "3", w.Header().Get("X-Rate-Limit"))
	}

	w := ping(engine)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-Rate-Limit-Remaining"))
	assert.Contains(t, w.Body.String(), "zd:rate_limited")
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter()

	assert.True(t, rl.Allow("a", 2))
	assert.True(t, rl.Allow("a", 2))
	assert.False(t, rl.Allow("a", 2))

	// Separate keys get separate buckets.
	assert.True(t, rl.Allow("b", 2))
}
