package gormstore

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/store"
)

// Equipment is the relational equipment store.
type Equipment struct {
	db *gorm.DB
}

// NewEquipment creates an equipment store on the given database handle.
func NewEquipment(db *gorm.DB) *Equipment {
	if db == nil {
		panic("db is nil")
	}

	return &Equipment{db: db}
}

// List returns one page of equipment matching the filter, ordered by
// category then name.
func (s *Equipment) List(filter store.EquipmentFilter) (*store.EquipmentPage, error) {
	query := s.db.Model(&models.Equipment{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	if len(filter.Categories) > 0 {
		query = query.Where("category IN ?", filter.Categories)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var items []models.Equipment

	err := query.
		Order("category ASC, name ASC").
		Limit(store.EquipmentPageSize).
		Offset((page - 1) * store.EquipmentPageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &store.EquipmentPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: store.EquipmentPageSize,
	}, nil
}

// Categories returns the distinct category labels in ascending order.
func (s *Equipment) Categories() ([]string, error) {
	var categories []string

	err := s.db.Model(&models.Equipment{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Get retrieves an equipment record by its id.
func (s *Equipment) Get(id uint64) (*models.Equipment, error) {
	var equipment models.Equipment

	result := s.db.First(&equipment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}

		return nil, result.Error
	}

	return &equipment, nil
}

// Create inserts a new equipment record. The engine assigns the id.
func (s *Equipment) Create(equipment *models.Equipment) error {
	return s.db.Create(equipment).Error
}

// Update saves the full equipment record.
func (s *Equipment) Update(equipment *models.Equipment) error {
	var existing models.Equipment

	result := s.db.First(&existing, equipment.ID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return store.ErrNotFound
		}

		return result.Error
	}

	return s.db.Model(equipment).Select("*").Omit("created_at").Updates(equipment).Error
}

// Delete removes an equipment record by its id.
func (s *Equipment) Delete(id uint64) error {
	result := s.db.Delete(&models.Equipment{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}

	return nil
}
