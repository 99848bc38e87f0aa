// Package about implements the about-section domain service.
package about

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/kochwerk/kochwerk/internal/catalog"
	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	"github.com/kochwerk/kochwerk/internal/store"
)

// UpdateRequest is the payload for replacing the about section. The image
// is retained when absent and replaced when a new reference is given;
// unlike recipes there is no explicit clear.
type UpdateRequest struct {
	Title   string  `json:"title"   validate:"required,max=255"`
	Content string  `json:"content" validate:"required"`
	Image   *string `json:"image"`
}

// Service is the about-section domain service.
type Service struct {
	store    store.AboutStore
	images   *imagestore.Store
	validate *validator.Validate
}

// New creates an about service on the given store.
func New(aboutStore store.AboutStore, images *imagestore.Store) *Service {
	if aboutStore == nil || images == nil {
		panic("store or images is nil")
	}

	return &Service{
		store:    aboutStore,
		images:   images,
		validate: catalog.NewValidator(),
	}
}

func (s *Service) present(about models.About) models.About {
	about.Image = s.images.Resolve(about.Image)
	return about
}

// Get returns the about section, or store.ErrNotFound when it was never set.
func (s *Service) Get() (*models.About, error) {
	about, err := s.store.Get()
	if err != nil {
		return nil, err
	}

	presented := s.present(*about)

	return &presented, nil
}

// Update validates and stores the about section. A new image reference
// releases the previously owned file; an absent one keeps it.
func (s *Service) Update(req *UpdateRequest) (*models.About, error) {
	if err := catalog.Validate(s.validate, req); err != nil {
		return nil, err
	}

	about, err := s.store.Get()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if about == nil {
		about = &models.About{}
	}

	about.Title = req.Title
	about.Content = req.Content

	if req.Image != nil {
		if about.Image != nil && *about.Image != *req.Image {
			s.images.ReleaseLogged(*about.Image)
		}

		about.Image = req.Image
	}

	if err := s.store.Save(about); err != nil {
		return nil, err
	}

	presented := s.present(*about)

	return &presented, nil
}
