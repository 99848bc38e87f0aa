// Package equipment implements the equipment REST endpoints including the
// filtered, paginated listing. Reads are public, writes sit behind the
// auth middleware.
package equipment

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	catalogequipment "github.com/kochwerk/kochwerk/internal/catalog/equipment"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/store"
	"github.com/kochwerk/kochwerk/internal/web/handler"
	authmiddleware "github.com/kochwerk/kochwerk/internal/web/middleware/auth"
)

// Path is the base path of the equipment endpoints.
const Path = handler.APIPath + "/equipment"

// Service is the equipment handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	equipment *catalogequipment.Service
}

// Handler is the equipment handler.
var Handler = Service{}

// Init initializes the equipment handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, equipment *catalogequipment.Service) error {
	if app == nil || cfg == nil || equipment == nil {
		return errors.New("app, cfg or equipment is nil")
	}

	s.cfg = cfg
	s.equipment = equipment

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:id", s.Get)
		router.Post(handler.RouterRootPath, authmiddleware.RequireAuth, s.Post)
		router.Put("/:id", authmiddleware.RequireAuth, s.Put)
		router.Delete("/:id", authmiddleware.RequireAuth, s.Delete)
	})

	return nil
}

// parseFilter reads the listing query parameters. Categories come either
// comma-separated or as repeated parameters; both forms may be mixed.
func parseFilter(c *fiber.Ctx) store.EquipmentFilter {
	filter := store.EquipmentFilter{
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
	}

	if filter.Page < 1 {
		filter.Page = 1
	}

	for _, raw := range c.Context().QueryArgs().PeekMulti("categories") {
		for _, category := range strings.Split(string(raw), ",") {
			category = strings.TrimSpace(category)
			if category != "" {
				filter.Categories = append(filter.Categories, category)
			}
		}
	}

	return filter
}

// List returns one page of equipment matching the request filters.
func (s *Service) List(c *fiber.Ctx) error {
	result, err := s.equipment.List(parseFilter(c))
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(result)
}

// Get returns a single equipment record.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return handler.DomainError(c, err)
	}

	found, err := s.equipment.Get(id)
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(found)
}

// Post creates an equipment record.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(catalogequipment.CreateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	created, err := s.equipment.Create(req)
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Put applies a partial update with the same image tri-state as recipes.
func (s *Service) Put(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return handler.DomainError(c, err)
	}

	req := new(catalogequipment.UpdateRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &keys); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	_, req.ImageProvided = keys["image"]

	updated, err := s.equipment.Update(id, req)
	if err != nil {
		return handler.DomainError(c, err)
	}

	return c.JSON(updated)
}

// Delete removes an equipment record.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return handler.DomainError(c, err)
	}

	if err := s.equipment.Delete(id); err != nil {
		return handler.DomainError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
