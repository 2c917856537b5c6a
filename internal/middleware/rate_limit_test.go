package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis returns a client whose connections are refused.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewProviderRateLimiter(unreachableRedis())

	router := gin.New()
	router.Use(Session())
	router.Use(limiter.RateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: uuid.NewString()})
	router.ServeHTTP(w, req)

	// A broken limiter must not take requests down with it
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Error"))
	assert.Empty(t, w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitMiddlewareSkipsWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewProviderRateLimiter(unreachableRedis())

	router := gin.New()
	router.Use(limiter.RateLimitMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Error"))
}

func TestGetRemainingRequestsErrorPropagates(t *testing.T) {
	limiter := NewProviderRateLimiter(unreachableRedis())

	_, _, err := limiter.GetRemainingRequests(context.Background(), "session-1")
	require.Error(t, err)
}

func TestProviderRateLimiterConfig(t *testing.T) {
	limiter := NewProviderRateLimiter(unreachableRedis())
	assert.Equal(t, 60, limiter.Limit())
}
