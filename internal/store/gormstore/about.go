package gormstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/store"
)

// About is the relational store for the singleton about section.
type About struct {
	db *gorm.DB
}

// NewAbout creates an about store on the given database handle.
func NewAbout(db *gorm.DB) *About {
	if db == nil {
		panic("db is nil")
	}

	return &About{db: db}
}

// Get retrieves the about section, or store.ErrNotFound when none exists yet.
func (s *About) Get() (*models.About, error) {
	var about models.About

	result := s.db.First(&about)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}

		return nil, result.Error
	}

	return &about, nil
}

// Save creates the about section when absent, otherwise updates it in place.
func (s *About) Save(about *models.About) error {
	var existing models.About

	result := s.db.First(&existing)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return s.db.Create(about).Error
	}

	if result.Error != nil {
		return result.Error
	}

	about.ID = existing.ID

	return s.db.Model(about).Select("*").Omit("created_at").Updates(about).Error
}
