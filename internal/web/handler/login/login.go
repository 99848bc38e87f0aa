// Package login implements the JSON login endpoint and the session check.
package login

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/kochwerk/kochwerk/internal/auth"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/web/handler"
	"github.com/kochwerk/kochwerk/internal/web/session"
)

const (
	// Path is the path of the login endpoint.
	Path = handler.APIPath + "/login"

	// CheckPath is the path of the session check endpoint.
	CheckPath = handler.APIPath + "/auth/check"
)

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	provider auth.Provider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, provider auth.Provider) error {
	if app == nil || cfg == nil || provider == nil {
		return errors.New("app, cfg or provider is nil")
	}

	s.cfg = cfg
	s.provider = provider

	app.Post(Path, s.Post)
	app.Get(CheckPath, s.Check)

	return nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Post handles the login request. Invalid credentials always answer with
// the same 401 body no matter which part was wrong.
func (s *Service) Post(c *fiber.Ctx) error {
	creds := new(credentials)
	if err := c.BodyParser(creds); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.provider.Authenticate(creds.Username, creds.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) && !errors.Is(err, auth.ErrUserAccountDisabled) {
			log.Error().Err(err).Msg("login failed")
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid username or password",
		})
	}

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return fiber.ErrInternalServerError
	}

	userSession := &session.Data{
		Username:   creds.Username,
		LoggedInAt: time.Now().UTC(),
	}

	expiry := s.cfg.Webserver.Session.ExpiryTime
	if err = userSession.Write(sessionID, expiry); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return fiber.ErrInternalServerError
	}

	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(expiry.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in",
	})
}

// Check reports whether the request carries a valid session.
func (s *Service) Check(c *fiber.Ctx) error {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil || sessData.Username == "" {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{
		"authenticated": true,
		"username":      sessData.Username,
	})
}
