package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumina-ai/backend/internal/service"
)

// ReportHandler serves PDF report downloads.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/download-pdf", h.Download)
}

type reportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

// Download renders the given content as a styled PDF attachment.
func (h *ReportHandler) Download(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	pdf, err := h.reports.BuildReport(req.Title, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render PDF"})
		return
	}

	filename := h.reports.ReportFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
