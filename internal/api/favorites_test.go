package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addFavorite(t *testing.T, app *testApp, sessionID, itemType string) {
	t.Helper()
	w := app.do(t, http.MethodPost, "/api/favorites", sessionID, map[string]interface{}{
		"item_type": itemType,
		"item_data": map[string]interface{}{"url": "a.png"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeJSON(t, w)["success"])
}

func listFavorites(t *testing.T, app *testApp, sessionID string) []interface{} {
	t.Helper()
	w := app.do(t, http.MethodGet, "/api/favorites", sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	favorites, ok := decodeJSON(t, w)["favorites"].([]interface{})
	require.True(t, ok)
	return favorites
}

func TestFavoritesRoundTrip(t *testing.T) {
	app := newTestApp(t)
	sessionID := uuid.NewString()

	addFavorite(t, app, sessionID, "image")
	addFavorite(t, app, sessionID, "chat")

	favorites := listFavorites(t, app, sessionID)
	require.Len(t, favorites, 2)

	newest := favorites[0].(map[string]interface{})
	assert.Equal(t, "chat", newest["item_type"])
	assert.NotContains(t, newest, "session_id", "session id must not leak into responses")
}

func TestFavoritesAddRequiresItemType(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/favorites", uuid.NewString(), map[string]interface{}{
		"item_data": map[string]interface{}{"url": "a.png"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesDeleteScopedToSession(t *testing.T) {
	app := newTestApp(t)
	owner := uuid.NewString()
	other := uuid.NewString()

	addFavorite(t, app, owner, "image")
	favorites := listFavorites(t, app, owner)
	require.Len(t, favorites, 1)
	id := favorites[0].(map[string]interface{})["id"].(float64)

	// A different session deleting the same id is a silent no-op
	w := app.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%.0f", id), other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeJSON(t, w)["success"])
	assert.Len(t, listFavorites(t, app, owner), 1)

	// The owner's delete removes it
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%.0f", id), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, listFavorites(t, app, owner))
}

func TestFavoritesDeleteByBody(t *testing.T) {
	app := newTestApp(t)
	owner := uuid.NewString()
	other := uuid.NewString()

	addFavorite(t, app, owner, "image")
	favorites := listFavorites(t, app, owner)
	require.Len(t, favorites, 1)
	id := favorites[0].(map[string]interface{})["id"].(float64)

	// Same session scoping applies to the body-carrying shape
	w := app.do(t, http.MethodDelete, "/api/favorites", other, map[string]interface{}{
		"favorite_id": id,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listFavorites(t, app, owner), 1)

	w = app.do(t, http.MethodDelete, "/api/favorites", owner, map[string]interface{}{
		"favorite_id": id,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeJSON(t, w)["success"])
	assert.Empty(t, listFavorites(t, app, owner))
}

func TestFavoritesDeleteByBodyRequiresID(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodDelete, "/api/favorites", uuid.NewString(), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesDeleteInvalidID(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodDelete, "/api/favorites/abc", uuid.NewString(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
