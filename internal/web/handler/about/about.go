// Package about implements the about-section endpoints.
package about

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	catalogabout "github.com/kochwerk/kochwerk/internal/catalog/about"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/store"
	"github.com/kochwerk/kochwerk/internal/web/handler"
	authmiddleware "github.com/kochwerk/kochwerk/internal/web/middleware/auth"
)

// Path is the path of the about endpoints.
const Path = handler.APIPath + "/about"

// Service is the about handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	about *catalogabout.Service
}

// Handler is the about handler.
var Handler = Service{}

// Init initializes the about handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, about *catalogabout.Service) error {
	if app == nil || cfg == nil || about == nil {
		return errors.New("app, cfg or about is nil")
	}

	s.cfg = cfg
	s.about = about

	app.Get(Path, s.Get)
	app.Put(Path, authmiddleware.RequireAuth, s.Put)

	return nil
}

// Get returns the about section. An unset section answers with an empty
// object so the public page renders without special-casing.
func (s *Service) Get(c *fiber.Ctx) error {
	found, err := s.about.Get()
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(fiber.Map{})
	}

	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(found)
}

// Put replaces the about section.
func (s *Service) Put(c *fiber.Ctx) error {
	req := new(catalogabout.UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	updated, err := s.about.Update(req)
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(updated)
}
