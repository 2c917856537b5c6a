package api

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/models"
	"github.com/lumina-ai/backend/internal/service"
)

// maxImageBytes caps inline image payloads for the local filters.
const maxImageBytes = 16 << 20

// ImageHandler serves image generation and the local image filters.
type ImageHandler struct {
	images   *service.ImageService
	enhance  *service.EnhanceService
	tracking *service.TrackingService
}

// NewImageHandler creates a new ImageHandler. images may be nil when no
// API key is configured; generation then returns 503 while the local
// filters keep working.
func NewImageHandler(images *service.ImageService, enhance *service.EnhanceService, tracking *service.TrackingService) *ImageHandler {
	return &ImageHandler{images: images, enhance: enhance, tracking: tracking}
}

// RegisterRoutes registers the image routes
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-image", h.Generate)
	router.POST("/enhance", h.Enhance)
	router.POST("/outpaint", h.Outpaint)
}

type generateImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Size   string `json:"size"`
}

// Generate creates an image from a text prompt.
func (h *ImageHandler) Generate(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image generation is not configured"})
		return
	}

	var req generateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	if req.Size == "" {
		req.Size = "1024x1024"
	}

	imageURL, err := h.images.GenerateImageFromPrompt(c.Request.Context(), req.Prompt, req.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate image"})
		return
	}

	h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
		models.FeatureTextToImage, "generate", nil)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"image_url": imageURL,
	})
}

// Enhance upscales an uploaded image with local filters.
func (h *ImageHandler) Enhance(c *gin.Context) {
	data, ok := h.readImage(c)
	if !ok {
		return
	}

	factor := 2
	if raw := c.PostForm("factor"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			factor = n
		}
	}

	result, err := h.enhance.Upscale(data, factor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to enhance image"})
		return
	}

	h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
		models.FeatureImageEnhance, "upscale", nil)

	h.respondImage(c, result)
}

// Outpaint extends an uploaded image's canvas with local filters.
func (h *ImageHandler) Outpaint(c *gin.Context) {
	data, ok := h.readImage(c)
	if !ok {
		return
	}

	padding := 128
	if raw := c.PostForm("padding"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			padding = n
		}
	}

	result, err := h.enhance.Outpaint(data, padding)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to outpaint image"})
		return
	}

	h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
		models.FeatureOutpainting, "outpaint", nil)

	h.respondImage(c, result)
}

// readImage pulls the uploaded image bytes from the multipart form and
// enforces the size cap. On failure it writes the error response.
func (h *ImageHandler) readImage(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return nil, false
	}
	if file.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("image exceeds the %d MB limit", maxImageBytes>>20),
		})
		return nil, false
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return nil, false
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return nil, false
	}
	return data, true
}

func (h *ImageHandler) respondImage(c *gin.Context, png []byte) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"image":   base64.StdEncoding.EncodeToString(png),
		"format":  "png",
	})
}
