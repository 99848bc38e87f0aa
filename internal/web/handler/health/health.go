// Package health implements the reachability probe endpoint.
package health

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/web/handler"
)

// Path is the path of the health endpoint.
const Path = handler.APIPath + "/health"

// Service is the health handler service.
type Service struct {
	handler.Service

	alive *atomic.Bool
}

// Handler is the health handler.
var Handler = Service{}

// Init initializes the health handler. The alive flag is cleared during
// graceful shutdown so load balancers drop the instance before the
// listener closes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, alive *atomic.Bool) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACFatalLogMsg)
		return
	}

	s.alive = alive

	app.Get(Path, s.Get)
}

// Get reports that the server is up. Clients use this as their
// reachability probe, so the body stays minimal.
func (s *Service) Get(c *fiber.Ctx) error {
	if s.alive != nil && !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "shutting down"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
