// Package instagram implements the instagram feed endpoint. The upstream
// feed integration is gone, so the endpoint serves an empty image list to
// keep old clients working.
package instagram

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/web/handler"
)

// Path is the path of the instagram endpoint.
const Path = handler.APIPath + "/instagram"

// Service is the instagram handler service.
type Service struct {
	handler.Service
}

// Handler is the instagram handler.
var Handler = Service{}

// Init initializes the instagram handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACFatalLogMsg)
		return
	}

	app.Get(Path, s.Get)
}

// Get returns the (empty) feed image list.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"images": []string{}})
}
