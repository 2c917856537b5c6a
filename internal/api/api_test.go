package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lumina-ai/backend/internal/middleware"
	"github.com/lumina-ai/backend/internal/models"
	"github.com/lumina-ai/backend/internal/service"
)

type testApp struct {
	router   *gin.Engine
	db       *gorm.DB
	tracking *service.TrackingService
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open db")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Session{},
		&models.Interaction{},
		&models.Favorite{},
	))
	return db
}

// newTestApp wires the database-backed handlers over an in-memory store.
// Provider-backed handlers are registered by the tests that need them.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)

	tracking := service.NewTrackingService(db)
	favorites := service.NewFavoriteService(db)
	analytics := service.NewAnalyticsService(db)
	recommendation := service.NewRecommendationService(tracking)

	router := gin.New()
	router.Use(middleware.Session())

	apiGroup := router.Group("/api")
	NewTrackingHandler(tracking).RegisterRoutes(apiGroup)
	NewFavoritesHandler(favorites, tracking).RegisterRoutes(apiGroup)
	NewAnalyticsHandler(analytics, recommendation).RegisterRoutes(apiGroup)
	NewReportHandler(service.NewReportService()).RegisterRoutes(apiGroup)

	return &testApp{router: router, db: db, tracking: tracking}
}

// do performs a JSON request carrying the given session cookie.
func (a *testApp) do(t *testing.T, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: sessionID})
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
