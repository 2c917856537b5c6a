package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumina-ai/backend/internal/language"
	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/models"
	"github.com/lumina-ai/backend/internal/service"
)

// SpeechHandler serves voice transcription and speech synthesis.
type SpeechHandler struct {
	speech   *service.SpeechService
	tracking *service.TrackingService
}

// NewSpeechHandler creates a new SpeechHandler. speech may be nil when
// no API key is configured; the endpoints then return 503.
func NewSpeechHandler(speech *service.SpeechService, tracking *service.TrackingService) *SpeechHandler {
	return &SpeechHandler{speech: speech, tracking: tracking}
}

// RegisterRoutes registers the speech routes
func (h *SpeechHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/transcribe", h.Transcribe)
	router.POST("/speech", h.Speak)
}

type speechRequest struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"`
}

// Transcribe converts uploaded audio to text.
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	if h.speech == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "transcription service is not configured"})
		return
	}

	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read audio"})
		return
	}
	defer func() { _ = f.Close() }()

	text, err := h.speech.Transcribe(c.Request.Context(), f, file.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to transcribe audio"})
		return
	}

	h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
		models.FeatureVoiceToText, "transcribe", nil)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"text":     text,
		"language": language.Detect(text),
	})
}

// Speak converts text to spoken audio and streams back MP3 bytes.
func (h *SpeechHandler) Speak(c *gin.Context) {
	if h.speech == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "speech service is not configured"})
		return
	}

	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	audio, err := h.speech.Synthesize(c.Request.Context(), req.Text, req.Voice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to synthesize speech"})
		return
	}

	h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
		models.FeatureTextToAudio, "speak", nil)

	c.Data(http.StatusOK, "audio/mpeg", audio)
}
