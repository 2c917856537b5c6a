package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadPDF(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/download-pdf", uuid.NewString(), map[string]interface{}{
		"title":   "Session Report",
		"content": "# Summary\n\nEverything went fine.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
	require.GreaterOrEqual(t, w.Body.Len(), 4)
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestDownloadPDFRequiresContent(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/download-pdf", uuid.NewString(), map[string]interface{}{
		"title": "no content",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
