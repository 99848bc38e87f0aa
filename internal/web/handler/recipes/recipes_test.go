package recipes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochwerk/kochwerk/internal/catalog/recipe"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	"github.com/kochwerk/kochwerk/internal/store/jsonstore"
	"github.com/kochwerk/kochwerk/internal/web/session"
)

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	session.Init(memory.New())

	images, err := imagestore.New(t.TempDir(), "/uploads", "http://localhost:3670")
	require.NoError(t, err)

	app := fiber.New()

	var s Service
	require.NoError(t, s.Init(app, &config.Config{}, recipe.New(jsonstore.NewRecipes(t.TempDir()), images)))

	sessionID, err := session.GenerateSessionID()
	require.NoError(t, err)
	data := &session.Data{Username: "admin", LoggedInAt: time.Now()}
	require.NoError(t, data.Write(sessionID, time.Hour))

	return app, session.CookieName + "=" + sessionID
}

func doJSON(t *testing.T, app *fiber.App, method, target, body, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

const validRecipe = `{
	"title": "Käsespätzle",
	"description": "Schwäbischer Klassiker",
	"ingredients": ["500g Spätzle", "200g Bergkäse"],
	"instructions": ["Spätzle kochen", "Käse unterheben"]
}`

func TestListEmpty(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, Path, "", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestWritesRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodPost, target: Path, body: validRecipe},
		{method: http.MethodPut, target: Path + "/1", body: `{"title":"Neu"}`},
		{method: http.MethodDelete, target: Path + "/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := doJSON(t, app, tt.method, tt.target, tt.body, "")
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestCreateAndGet(t *testing.T) {
	app, cookie := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, Path, validRecipe, cookie)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Recipe
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, uint64(1), created.ID)

	getResp := doJSON(t, app, http.MethodGet, Path+"/1", "", "")
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var got models.Recipe
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&got))
	assert.Equal(t, "Käsespätzle", got.Title)
}

func TestGetUnknown(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{Path + "/99", Path + "/nan"} {
		resp := doJSON(t, app, http.MethodGet, target, "", "")
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"Not found"}`, string(body))
	}
}

func TestCreateValidationError(t *testing.T) {
	app, cookie := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, Path, `{"title":"Nur Titel"}`, cookie)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body.Error)
	assert.Contains(t, body.Fields, "description")
}

func TestPutImageTriState(t *testing.T) {
	app, cookie := newTestApp(t)

	withImage := `{
		"title": "Käsespätzle",
		"description": "Schwäbischer Klassiker",
		"image": "https://example.org/spaetzle.jpg",
		"ingredients": ["Spätzle"],
		"instructions": ["Kochen"]
	}`
	resp := doJSON(t, app, http.MethodPost, Path, withImage, cookie)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// absent image key keeps the stored image
	keepResp := doJSON(t, app, http.MethodPut, Path+"/1", `{"title":"Neu"}`, cookie)
	defer keepResp.Body.Close()
	require.Equal(t, http.StatusOK, keepResp.StatusCode)

	var kept models.Recipe
	require.NoError(t, json.NewDecoder(keepResp.Body).Decode(&kept))
	require.NotNil(t, kept.Image)
	assert.Equal(t, "https://example.org/spaetzle.jpg", *kept.Image)

	// explicit null clears it
	clearResp := doJSON(t, app, http.MethodPut, Path+"/1", `{"image":null}`, cookie)
	defer clearResp.Body.Close()
	require.Equal(t, http.StatusOK, clearResp.StatusCode)

	var cleared models.Recipe
	require.NoError(t, json.NewDecoder(clearResp.Body).Decode(&cleared))
	assert.Nil(t, cleared.Image)
}

func TestDelete(t *testing.T) {
	app, cookie := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, Path, validRecipe, cookie)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	delResp := doJSON(t, app, http.MethodDelete, Path+"/1", "", cookie)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	againResp := doJSON(t, app, http.MethodDelete, Path+"/1", "", cookie)
	defer againResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, againResp.StatusCode)
}
