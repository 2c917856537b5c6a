package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumina-ai/backend/internal/language"
	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/models"
	"github.com/lumina-ai/backend/internal/service"
)

// ChatHandler serves the text endpoints backed by the language model.
type ChatHandler struct {
	llm      *service.LLMService
	tracking *service.TrackingService
}

// NewChatHandler creates a new ChatHandler. llm may be nil when no API
// key is configured; the endpoints then return 503.
func NewChatHandler(llm *service.LLMService, tracking *service.TrackingService) *ChatHandler {
	return &ChatHandler{llm: llm, tracking: tracking}
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chat", h.Chat)
	router.POST("/analyze", h.Analyze)
	router.POST("/detect-language", h.DetectLanguage)
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

type analyzeRequest struct {
	Content string `json:"content" binding:"required"`
	Prompt  string `json:"prompt"`
}

type detectLanguageRequest struct {
	Text string `json:"text" binding:"required"`
}

// Chat answers a conversational message.
func (h *ChatHandler) Chat(c *gin.Context) {
	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat service is not configured"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.llm.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get response"})
		return
	}

	h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
		models.FeatureTextToText, "chat", nil)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": reply,
		"language": language.Detect(req.Message),
	})
}

// Analyze runs content analysis with an optional custom prompt.
func (h *ChatHandler) Analyze(c *gin.Context) {
	if h.llm == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis service is not configured"})
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	analysis, err := h.llm.Analyze(c.Request.Context(), req.Content, req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to analyze content"})
		return
	}

	h.tracking.Record(c.Request.Context(), middleware.SessionID(c),
		models.FeatureTextToText, "analyze", nil)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"analysis": analysis,
		"language": language.Detect(req.Content),
	})
}

// DetectLanguage classifies text as Kannada or English by script share.
func (h *ChatHandler) DetectLanguage(c *gin.Context) {
	var req detectLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"language": language.Detect(req.Text),
		"script":   language.ScriptName(req.Text),
	})
}
