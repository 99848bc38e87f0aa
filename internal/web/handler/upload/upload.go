// Package upload implements the admin image upload endpoint.
package upload

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	"github.com/kochwerk/kochwerk/internal/web/handler"
	authmiddleware "github.com/kochwerk/kochwerk/internal/web/middleware/auth"
)

// Path is the path of the upload endpoint.
const Path = handler.APIPath + "/upload"

// FieldName is the multipart form field the image is read from.
const FieldName = "image"

// Service is the upload handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	images *imagestore.Store
}

// Handler is the upload handler.
var Handler = Service{}

// Init initializes the upload handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, images *imagestore.Store) error {
	if app == nil || cfg == nil || images == nil {
		return errors.New("app, cfg or images is nil")
	}

	s.cfg = cfg
	s.images = images

	app.Post(Path, authmiddleware.RequireAuth, s.Post)

	return nil
}

// Post stores an uploaded image and returns its public URL together with
// the stored file name.
func (s *Service) Post(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(FieldName)
	if err != nil {
		return handler.BadRequest(c, "No image file provided")
	}

	if fileHeader.Size > s.cfg.Uploads.MaxSize {
		return handler.BadRequest(c, "Image exceeds the maximum upload size")
	}

	if !imagestore.Allowed(fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType)) {
		return handler.BadRequest(c, "Unsupported image type")
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded file")
		return fiber.ErrInternalServerError
	}
	defer file.Close()

	name, err := s.images.Save(fileHeader.Filename, file)
	if err != nil {
		log.Error().Err(err).Msg("failed to store uploaded file")
		return fiber.ErrInternalServerError
	}

	return c.JSON(fiber.Map{
		"url":      s.images.URL(name),
		"filename": name,
	})
}
