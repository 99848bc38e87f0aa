// Package equipment implements the equipment domain service.
package equipment

import (
	"github.com/go-playground/validator/v10"

	"github.com/kochwerk/kochwerk/internal/catalog"
	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	"github.com/kochwerk/kochwerk/internal/store"
)

// CreateRequest is the payload for creating an equipment record.
type CreateRequest struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Link        string  `json:"link"        validate:"required,url,max=500"`
	Category    string  `json:"category"    validate:"required,max=100"`
}

// UpdateRequest is the payload for a partial equipment update. Nil fields
// retain the stored value; the image field is tri-state like on recipes.
type UpdateRequest struct {
	Name          *string `json:"name"        validate:"omitempty,min=1,max=255"`
	Description   *string `json:"description"`
	Image         *string `json:"image"`
	ImageProvided bool    `json:"-"`
	Link          *string `json:"link"        validate:"omitempty,url,max=500"`
	Category      *string `json:"category"    validate:"omitempty,min=1,max=100"`
}

// Filters echoes the active listing filters back to the client.
type Filters struct {
	Search     string   `json:"search"`
	Categories []string `json:"categories"`
}

// ListResult is one page of equipment together with the active filter echo
// and the full category list for the filter UI.
type ListResult struct {
	Data          []models.Equipment `json:"data"`
	Filters       Filters            `json:"filters"`
	AllCategories []string           `json:"allCategories"`
	Page          int                `json:"page"`
	PerPage       int                `json:"perPage"`
	Total         int64              `json:"total"`
}

// Service is the equipment domain service.
type Service struct {
	store    store.EquipmentStore
	images   *imagestore.Store
	validate *validator.Validate
}

// New creates an equipment service on the given store.
func New(equipmentStore store.EquipmentStore, images *imagestore.Store) *Service {
	if equipmentStore == nil || images == nil {
		panic("store or images is nil")
	}

	return &Service{
		store:    equipmentStore,
		images:   images,
		validate: catalog.NewValidator(),
	}
}

func (s *Service) present(equipment models.Equipment) models.Equipment {
	equipment.Image = s.images.Resolve(equipment.Image)
	return equipment
}

// List returns one page of equipment matching the filter, with resolved
// image URLs, the filter echo and all known categories.
func (s *Service) List(filter store.EquipmentFilter) (*ListResult, error) {
	page, err := s.store.List(filter)
	if err != nil {
		return nil, err
	}

	categories, err := s.store.Categories()
	if err != nil {
		return nil, err
	}

	data := make([]models.Equipment, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, s.present(item))
	}

	echoedCategories := filter.Categories
	if echoedCategories == nil {
		echoedCategories = []string{}
	}

	return &ListResult{
		Data:          data,
		Filters:       Filters{Search: filter.Search, Categories: echoedCategories},
		AllCategories: categories,
		Page:          page.Page,
		PerPage:       page.PerPage,
		Total:         page.Total,
	}, nil
}

// Get retrieves a single equipment record with a resolved image URL.
func (s *Service) Get(id uint64) (*models.Equipment, error) {
	equipment, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	presented := s.present(*equipment)

	return &presented, nil
}

// Create validates and persists a new equipment record.
func (s *Service) Create(req *CreateRequest) (*models.Equipment, error) {
	if err := catalog.Validate(s.validate, req); err != nil {
		return nil, err
	}

	equipment := &models.Equipment{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Link:        req.Link,
		Category:    req.Category,
	}

	if err := s.store.Create(equipment); err != nil {
		return nil, err
	}

	presented := s.present(*equipment)

	return &presented, nil
}

// Update applies a partial update with tri-state image handling.
func (s *Service) Update(id uint64, req *UpdateRequest) (*models.Equipment, error) {
	if err := catalog.Validate(s.validate, req); err != nil {
		return nil, err
	}

	equipment, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		equipment.Name = *req.Name
	}

	if req.Description != nil {
		equipment.Description = req.Description
	}

	if req.Link != nil {
		equipment.Link = *req.Link
	}

	if req.Category != nil {
		equipment.Category = *req.Category
	}

	if req.ImageProvided {
		if equipment.Image != nil && (req.Image == nil || *req.Image != *equipment.Image) {
			s.images.ReleaseLogged(*equipment.Image)
		}

		equipment.Image = req.Image
	}

	if err := s.store.Update(equipment); err != nil {
		return nil, err
	}

	presented := s.present(*equipment)

	return &presented, nil
}

// Delete removes an equipment record and releases its owned image file.
func (s *Service) Delete(id uint64) error {
	equipment, err := s.store.Get(id)
	if err != nil {
		return err
	}

	if equipment.Image != nil {
		s.images.ReleaseLogged(*equipment.Image)
	}

	return s.store.Delete(id)
}
