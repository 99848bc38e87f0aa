package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kochwerk/kochwerk/internal/web/session"
)

// LocalsKey is the fiber.Locals key the session data is stored under.
const LocalsKey = "SessionData"

// RequireAuth is a Fiber middleware that rejects requests without a valid
// session with a 401 JSON error. This is a JSON API, so unauthenticated
// requests are never redirected.
func RequireAuth(c *fiber.Ctx) error {
	sessionID := c.Cookies(session.CookieName)
	if sessionID == "" {
		return unauthorized(c)
	}

	sessData := new(session.Data)
	if err := sessData.Read(sessionID); err != nil {
		return unauthorized(c)
	}

	if sessData.Username == "" {
		return unauthorized(c)
	}

	c.Locals(LocalsKey, sessData)

	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}
