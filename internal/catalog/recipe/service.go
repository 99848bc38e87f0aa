// Package recipe implements the recipe domain service.
package recipe

import (
	"github.com/go-playground/validator/v10"

	"github.com/kochwerk/kochwerk/internal/catalog"
	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	"github.com/kochwerk/kochwerk/internal/store"
)

// CreateRequest is the payload for creating a recipe.
type CreateRequest struct {
	Title        string   `json:"title"        validate:"required,max=255"`
	Description  string   `json:"description"  validate:"required"`
	Image        *string  `json:"image"`
	Servings     *int     `json:"servings"     validate:"omitempty,gt=0"`
	PrepTime     *int     `json:"prep_time"    validate:"omitempty,gt=0"`
	CookTime     *int     `json:"cook_time"    validate:"omitempty,gt=0"`
	RestTime     *int     `json:"rest_time"    validate:"omitempty,gt=0"`
	Ingredients  []string `json:"ingredients"  validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
}

// UpdateRequest is the payload for a partial recipe update. Nil fields are
// absent from the payload and retain the stored value. The image field is
// tri-state: ImageProvided distinguishes an explicit null (clear the image)
// from an absent key (keep it).
type UpdateRequest struct {
	Title         *string  `json:"title"        validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"  validate:"omitempty,min=1"`
	Image         *string  `json:"image"`
	ImageProvided bool     `json:"-"`
	Servings      *int     `json:"servings"     validate:"omitempty,gt=0"`
	PrepTime      *int     `json:"prep_time"    validate:"omitempty,gt=0"`
	CookTime      *int     `json:"cook_time"    validate:"omitempty,gt=0"`
	RestTime      *int     `json:"rest_time"    validate:"omitempty,gt=0"`
	Ingredients   []string `json:"ingredients"  validate:"omitempty,min=1,dive,required"`
	Instructions  []string `json:"instructions" validate:"omitempty,min=1,dive,required"`
}

// Service is the recipe domain service.
type Service struct {
	store    store.RecipeStore
	images   *imagestore.Store
	validate *validator.Validate
}

// New creates a recipe service on the given store.
func New(recipeStore store.RecipeStore, images *imagestore.Store) *Service {
	if recipeStore == nil || images == nil {
		panic("store or images is nil")
	}

	return &Service{
		store:    recipeStore,
		images:   images,
		validate: catalog.NewValidator(),
	}
}

// present returns a copy with the image reference rewritten to a public URL.
func (s *Service) present(recipe models.Recipe) models.Recipe {
	recipe.Image = s.images.Resolve(recipe.Image)
	return recipe
}

// List returns all recipes with resolved image URLs.
func (s *Service) List() ([]models.Recipe, error) {
	recipes, err := s.store.List()
	if err != nil {
		return nil, err
	}

	out := make([]models.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, s.present(recipe))
	}

	return out, nil
}

// Get retrieves a single recipe with a resolved image URL.
func (s *Service) Get(id uint64) (*models.Recipe, error) {
	recipe, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	presented := s.present(*recipe)

	return &presented, nil
}

// Create validates and persists a new recipe.
func (s *Service) Create(req *CreateRequest) (*models.Recipe, error) {
	if err := catalog.Validate(s.validate, req); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		Servings:     req.Servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		RestTime:     req.RestTime,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
	}

	if err := s.store.Create(recipe); err != nil {
		return nil, err
	}

	presented := s.present(*recipe)

	return &presented, nil
}

// Update applies a partial update. Absent fields keep their stored value;
// the image field follows the tri-state rules described on UpdateRequest.
func (s *Service) Update(id uint64, req *UpdateRequest) (*models.Recipe, error) {
	if err := catalog.Validate(s.validate, req); err != nil {
		return nil, err
	}

	recipe, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}

	if req.Description != nil {
		recipe.Description = *req.Description
	}

	if req.Servings != nil {
		recipe.Servings = req.Servings
	}

	if req.PrepTime != nil {
		recipe.PrepTime = req.PrepTime
	}

	if req.CookTime != nil {
		recipe.CookTime = req.CookTime
	}

	if req.RestTime != nil {
		recipe.RestTime = req.RestTime
	}

	if req.Ingredients != nil {
		recipe.Ingredients = req.Ingredients
	}

	if req.Instructions != nil {
		recipe.Instructions = req.Instructions
	}

	if req.ImageProvided {
		// a changed reference or an explicit null releases the previous
		// managed file; echoing the stored reference keeps it
		if recipe.Image != nil && (req.Image == nil || *req.Image != *recipe.Image) {
			s.images.ReleaseLogged(*recipe.Image)
		}

		recipe.Image = req.Image
	}

	if err := s.store.Update(recipe); err != nil {
		return nil, err
	}

	presented := s.present(*recipe)

	return &presented, nil
}

// Delete removes a recipe and releases its owned image file.
func (s *Service) Delete(id uint64) error {
	recipe, err := s.store.Get(id)
	if err != nil {
		return err
	}

	if recipe.Image != nil {
		s.images.ReleaseLogged(*recipe.Image)
	}

	return s.store.Delete(id)
}
