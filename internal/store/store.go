// Package store defines the storage adapter contracts the domain services
// are built against. Two interchangeable realizations exist: gormstore on a
// relational engine and jsonstore on JSON-array files.
package store

import (
	"errors"

	"github.com/kochwerk/kochwerk/internal/db/models"
)

var (
	// ErrNotFound is returned when a record with the requested id does not exist.
	ErrNotFound = errors.New("record not found")
)

// EquipmentPageSize is the fixed page size of filtered equipment listings.
const EquipmentPageSize = 12

// EquipmentFilter narrows an equipment listing. Zero values impose no
// constraint; Search and Categories combine with logical AND.
type EquipmentFilter struct {
	// Search is matched case-insensitively as a substring against name
	// or description.
	Search string
	// Categories restricts to records whose category equals any entry.
	Categories []string
	// Page selects the result page, starting at 1.
	Page int
}

// EquipmentPage is one page of a filtered equipment listing.
type EquipmentPage struct {
	Items   []models.Equipment
	Total   int64
	Page    int
	PerPage int
}

// RecipeStore persists recipes.
type RecipeStore interface {
	List() ([]models.Recipe, error)
	Get(id uint64) (*models.Recipe, error)
	Create(recipe *models.Recipe) error
	Update(recipe *models.Recipe) error
	Delete(id uint64) error
}

// EquipmentStore persists equipment records.
type EquipmentStore interface {
	List(filter EquipmentFilter) (*EquipmentPage, error)
	Categories() ([]string, error)
	Get(id uint64) (*models.Equipment, error)
	Create(equipment *models.Equipment) error
	Update(equipment *models.Equipment) error
	Delete(id uint64) error
}

// AboutStore persists the singleton about section.
type AboutStore interface {
	Get() (*models.About, error)
	Save(about *models.About) error
}
