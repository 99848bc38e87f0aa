// Package recipes implements the recipe REST endpoints. Reads are public,
// writes sit behind the auth middleware.
package recipes

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kochwerk/kochwerk/internal/catalog/recipe"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/web/handler"
	authmiddleware "github.com/kochwerk/kochwerk/internal/web/middleware/auth"
)

// Path is the base path of the recipe endpoints.
const Path = handler.APIPath + "/recipes"

// Service is the recipes handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	recipes *recipe.Service
}

// Handler is the recipes handler.
var Handler = Service{}

// Init initializes the recipes handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, recipes *recipe.Service) error {
	if app == nil || cfg == nil || recipes == nil {
		return errors.New("app, cfg or recipes is nil")
	}

	s.cfg = cfg
	s.recipes = recipes

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:id", s.Get)
		router.Post(handler.RouterRootPath, authmiddleware.RequireAuth, s.Post)
		router.Put("/:id", authmiddleware.RequireAuth, s.Put)
		router.Delete("/:id", authmiddleware.RequireAuth, s.Delete)
	})

	return nil
}

// List returns all recipes.
func (s *Service) List(c *fiber.Ctx) error {
	recipes, err := s.recipes.List()
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(recipes)
}

// Get returns a single recipe.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return handler.DomainError(c, err)
	}

	found, err := s.recipes.Get(id)
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(found)
}

// Post creates a recipe.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(recipe.CreateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	created, err := s.recipes.Create(req)
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Put applies a partial update. The raw body decides the image field's
// tri-state: an absent key keeps the stored image, an explicit null clears
// it.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return handler.DomainError(c, err)
	}

	req := new(recipe.UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &keys); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	_, req.ImageProvided = keys["image"]

	updated, err := s.recipes.Update(id, req)
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(updated)
}

// Delete removes a recipe.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return handler.DomainError(c, err)
	}

	if err := s.recipes.Delete(id); err != nil {
		return handler.DomainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
