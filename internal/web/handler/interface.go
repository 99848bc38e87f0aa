package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kochwerk/kochwerk/internal/config"
)

// Service is the interface for a web handler service. Handlers that need
// more than the app and the config take their dependencies in their own
// Init methods.
type Service interface {
	Init(app *fiber.App, cfg *config.Config) error
}
