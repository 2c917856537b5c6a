package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lumina-ai/backend/config"
	"github.com/lumina-ai/backend/internal/api"
	"github.com/lumina-ai/backend/internal/database"
	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
}

// New creates a new server instance with all routes registered. The
// provider services and redis client are constructed here and passed
// down; each one is optional and a failure only degrades the endpoints
// that need it.
func New(db *gorm.DB, cfg *config.Config) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	router.Use(middleware.CORS())
	router.Use(middleware.Session())

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
		// Continue without rate limiting if Redis is not available
		redisClient = nil
	}

	llmService, err := service.NewLLMService()
	if err != nil {
		log.Printf("Warning: LLM service unavailable: %v", err)
		llmService = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("Warning: S3 storage unavailable, serving provider URLs directly: %v", err)
		s3Config = nil
	}

	imageService, err := service.NewImageService(s3Config)
	if err != nil {
		log.Printf("Warning: Image generation service unavailable: %v", err)
		imageService = nil
	}

	speechService, err := service.NewSpeechService()
	if err != nil {
		log.Printf("Warning: Speech service unavailable: %v", err)
		speechService = nil
	}

	api.RegisterRoutes(router, db, llmService, imageService, speechService, redisClient, cfg)

	return &Server{
		router: router,
		db:     db,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start runs the HTTP server until it stops serving.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
