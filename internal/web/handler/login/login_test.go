package login

import (
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

	"github.com/kochwerk/kochwerk/internal/auth"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/web/session"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3670,
			Session: config.Session{ExpiryTime: 24 * time.Hour},
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *fiber.App {
	t.Helper()

	session.Init(memory.New())

	app := fiber.New()

	var s Service
	require.NoError(t, s.Init(app, cfg, auth.NewStaticProvider("admin", "geheim")))

	return app
}

func performLogin(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestPostSuccessSetsCookie(t *testing.T) {
	cfg := newTestConfig()
	app := newTestApp(t, cfg)

	resp := performLogin(t, app, `{"username":"admin","password":"geheim"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Logged in"}`, string(body))

	setCookie := resp.Header.Get("Set-Cookie")
	assert.Contains(t, setCookie, session.CookieName+"=")
	assert.Contains(t, strings.ToLower(setCookie), "secure")
	assert.Contains(t, strings.ToLower(setCookie), "httponly")
}

func TestPostDevModeDisablesSecure(t *testing.T) {
	cfg := newTestConfig()
	cfg.DevMode = true
	app := newTestApp(t, cfg)

	resp := performLogin(t, app, `{"username":"admin","password":"geheim"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, strings.ToLower(resp.Header.Get("Set-Cookie")), "secure")
}

func TestPostInvalidCredentials(t *testing.T) {
	app := newTestApp(t, newTestConfig())

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"username":"admin","password":"falsch"}`},
		{name: "unknown user", body: `{"username":"niemand","password":"geheim"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performLogin(t, app, tt.body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"error":"Invalid username or password"}`, string(body))
			assert.Empty(t, resp.Header.Get("Set-Cookie"))
		})
	}
}

func TestPostMalformedBody(t *testing.T) {
	app := newTestApp(t, newTestConfig())

	resp := performLogin(t, app, `{`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheck(t *testing.T) {
	app := newTestApp(t, newTestConfig())

	// unauthenticated
	req := httptest.NewRequest(http.MethodGet, CheckPath, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"authenticated":false}`, string(body))

	// log in, reuse the cookie
	loginResp := performLogin(t, app, `{"username":"admin","password":"geheim"}`)
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, CheckPath, nil)
	req.Header.Set("Cookie", loginResp.Header.Get("Set-Cookie"))

	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"authenticated":true,"username":"admin"}`, string(body))
}
