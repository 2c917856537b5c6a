package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lumina-ai/backend/config"
	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/models"
	"github.com/lumina-ai/backend/internal/service"
)

// previewLength caps the extracted-text preview in the upload response.
const previewLength = 500

// UploadHandler accepts document and image uploads and extracts text.
type UploadHandler struct {
	extract  *service.ExtractService
	tracking *service.TrackingService
	cfg      *config.Config
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(extract *service.ExtractService, tracking *service.TrackingService, cfg *config.Config) *UploadHandler {
	return &UploadHandler{extract: extract, tracking: tracking, cfg: cfg}
}

// RegisterRoutes registers the upload routes
func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/upload", h.Upload)
}

// Upload saves the file to a temporary location, extracts its text and
// responds with a preview plus the full text. The temp file is always
// removed afterwards.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if file.Size > h.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds the %d MB limit", h.cfg.MaxUploadBytes>>20),
		})
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if ext == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file has no extension"})
		return
	}

	if err := os.MkdirAll(h.cfg.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	tempPath := filepath.Join(h.cfg.UploadDir, fmt.Sprintf("%s.%s", uuid.NewString(), ext))
	if err := c.SaveUploadedFile(file, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer func() { _ = os.Remove(tempPath) }()

	text, err := h.extract.ExtractText(c.Request.Context(), tempPath, ext)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("unsupported file type: %s", ext),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to extract text from file"})
		return
	}

	if service.IsImageExtension(ext) {
		h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
			models.FeatureImageToText, "upload", nil)
	}

	// The preview length counts characters, not bytes
	preview := text
	if runes := []rune(preview); len(runes) > previewLength {
		preview = string(runes[:previewLength])
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"filename":      file.Filename,
		"extractedText": preview,
		"fullText":      text,
	})
}
