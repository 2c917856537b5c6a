package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumina-ai/backend/config"
	"github.com/lumina-ai/backend/internal/middleware"
)

func TestHealthCheckReportsKeyState(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck(true))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["api_key_configured"])

	endpoints, ok := body["endpoints"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/api/chat", endpoints["chat"])
	assert.Equal(t, "/api/favorites", endpoints["favorites"])
}

func TestHealthCheckWithoutKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck(false))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["api_key_configured"])
}

// registerAll wires the full route table with no providers and no redis.
func registerAll(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)
	cfg := &config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	}

	router := gin.New()
	RegisterRoutes(router, db, nil, nil, nil, nil, cfg)
	return router
}

func TestRegisterRoutesServesStatusEverywhere(t *testing.T) {
	router := registerAll(t)

	for _, path := range []string{"/", "/health", "/api/health"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, "status endpoint %s", path)
		assert.Contains(t, w.Body.String(), `"api_key_configured":false`)
	}
}

func TestRegisterRoutesDegradesWithoutProviders(t *testing.T) {
	router := registerAll(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Database-backed endpoints keep working
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterRoutesNoRateLimitStatusWithoutRedis(t *testing.T) {
	router := registerAll(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rate-limit-status", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimitStatusReportsCheckFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	limiter := middleware.NewProviderRateLimiter(client)

	router := gin.New()
	router.Use(middleware.Session())
	RegisterRateLimitRoutes(router.Group("/api"), limiter)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rate-limit-status", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: uuid.NewString()})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to check rate limit")
}
