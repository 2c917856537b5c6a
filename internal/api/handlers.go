package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lumina-ai/backend/config"
	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/service"
)

// apiEndpoints lists the public API surface, served from the status
// endpoints so clients can discover what is available.
var apiEndpoints = gin.H{
	"chat":            "/api/chat",
	"analyze":         "/api/analyze",
	"upload":          "/api/upload",
	"generate_image":  "/api/generate-image",
	"enhance":         "/api/enhance",
	"outpaint":        "/api/outpaint",
	"transcribe":      "/api/transcribe",
	"speech":          "/api/speech",
	"track":           "/api/track",
	"history":         "/api/history",
	"favorites":       "/api/favorites",
	"analytics":       "/api/analytics",
	"recommendations": "/api/recommendations",
	"download_pdf":    "/api/download-pdf",
	"detect_language": "/api/detect-language",
}

// HealthCheck returns the health status of the API, including whether
// the language-model key is configured.
func HealthCheck(llmConfigured bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":             "healthy",
			"message":            "Lumina API is running",
			"version":            "v1.0.0",
			"api_key_configured": llmConfigured,
			"endpoints":          apiEndpoints,
		})
	}
}

// RegisterRoutes registers all API routes. Provider services and the
// redis client are wired by the caller and may be nil: the affected
// endpoints then return 503 (or skip rate limiting) instead of
// preventing startup.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, llmService *service.LLMService, imageService *service.ImageService, speechService *service.SpeechService, redisClient *redis.Client, cfg *config.Config) {
	status := HealthCheck(llmService != nil)
	router.GET("/", status)
	router.GET("/health", status)
	router.GET("/api/health", status)

	var providerLimiter *middleware.RateLimiter
	if redisClient != nil {
		providerLimiter = middleware.NewProviderRateLimiter(redisClient)
	}

	trackingService := service.NewTrackingService(db)
	favoriteService := service.NewFavoriteService(db)
	analyticsService := service.NewAnalyticsService(db)
	recommendationService := service.NewRecommendationService(trackingService)
	extractService := service.NewExtractService(llmService)
	enhanceService := service.NewEnhanceService()
	reportService := service.NewReportService()

	trackingHandler := NewTrackingHandler(trackingService)
	favoritesHandler := NewFavoritesHandler(favoriteService, trackingService)
	analyticsHandler := NewAnalyticsHandler(analyticsService, recommendationService)
	chatHandler := NewChatHandler(llmService, trackingService)
	uploadHandler := NewUploadHandler(extractService, trackingService, cfg)
	imageHandler := NewImageHandler(imageService, enhanceService, trackingService)
	speechHandler := NewSpeechHandler(speechService, trackingService)
	reportHandler := NewReportHandler(reportService)

	apiGroup := router.Group("/api")
	trackingHandler.RegisterRoutes(apiGroup)
	favoritesHandler.RegisterRoutes(apiGroup)
	analyticsHandler.RegisterRoutes(apiGroup)
	uploadHandler.RegisterRoutes(apiGroup)
	reportHandler.RegisterRoutes(apiGroup)

	// Provider-backed endpoints share the rate limiter when Redis is up
	providerGroup := apiGroup.Group("")
	if providerLimiter != nil {
		providerGroup.Use(providerLimiter.RateLimitMiddleware())
		RegisterRateLimitRoutes(apiGroup, providerLimiter)
	}
	chatHandler.RegisterRoutes(providerGroup)
	imageHandler.RegisterRoutes(providerGroup)
	speechHandler.RegisterRoutes(providerGroup)
}

// RegisterRateLimitRoutes registers the endpoint for checking rate
// limit status without consuming a request.
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limit-status", func(c *gin.Context) {
		sessionID := middleware.SessionID(c)
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no session"})
			return
		}

		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     "1h",
		})
	})
}
