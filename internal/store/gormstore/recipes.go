// Package gormstore implements the storage adapter contracts on a
// relational database through gorm.
package gormstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/store"
)

// Recipes is the relational recipe store.
type Recipes struct {
	db *gorm.DB
}

// NewRecipes creates a recipe store on the given database handle.
func NewRecipes(db *gorm.DB) *Recipes {
	if db == nil {
		panic("db is nil")
	}

	return &Recipes{db: db}
}

// List returns all recipes, newest first.
func (s *Recipes) List() ([]models.Recipe, error) {
	var recipes []models.Recipe

	result := s.db.Order("created_at DESC, id DESC").Find(&recipes)
	if result.Error != nil {
		return nil, result.Error
	}

	return recipes, nil
}

// Get retrieves a recipe by its id.
func (s *Recipes) Get(id uint64) (*models.Recipe, error) {
	var recipe models.Recipe

	result := s.db.First(&recipe, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}

		return nil, result.Error
	}

	return &recipe, nil
}

// Create inserts a new recipe. The engine assigns the id.
func (s *Recipes) Create(recipe *models.Recipe) error {
	return s.db.Create(recipe).Error
}

// Update saves the full recipe record.
func (s *Recipes) Update(recipe *models.Recipe) error {
	var existing models.Recipe

	result := s.db.First(&existing, recipe.ID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return store.ErrNotFound
		}

		return result.Error
	}

	// Save with Select("*") so cleared nullable fields are written too.
	return s.db.Model(recipe).Select("*").Omit("created_at").Updates(recipe).Error
}

// Delete removes a recipe by its id.
func (s *Recipes) Delete(id uint64) error {
	result := s.db.Delete(&models.Recipe{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}
