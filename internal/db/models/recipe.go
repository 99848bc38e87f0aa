// Package models contains database model definitions.
package models

import (
	"time"
)

// StringList is an ordered list of strings stored as a JSON column.
type StringList []string

// Recipe represents a single recipe in the catalog.
type Recipe struct {
	// ID is the unique identifier for the recipe. It is assigned on create
	// and never reused after deletion.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is the recipe headline shown in listings.
	Title string `gorm:"size:255;not null" json:"title"`
	// Description is the free-text description of the dish.
	Description string `gorm:"type:text;not null" json:"description"`
	// Image is an opaque image reference: an absolute URL, a relative
	// stored-file path, or an inline data URL. Nil means no image.
	Image *string `gorm:"size:2048" json:"image"`
	// Servings is the number of portions the recipe yields.
	Servings *int `json:"servings"`
	// PrepTime is the preparation time in minutes.
	PrepTime *int `json:"prep_time"`
	// CookTime is the cooking time in minutes.
	CookTime *int `json:"cook_time"`
	// RestTime is the resting time in minutes.
	RestTime *int `json:"rest_time"`
	// Ingredients is the ordered ingredient list.
	Ingredients StringList `gorm:"serializer:json" json:"ingredients"`
	// Instructions is the ordered list of preparation steps.
	Instructions StringList `gorm:"serializer:json" json:"instructions"`
	// CreatedAt is the creation timestamp (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last modification timestamp (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the record id.
func (r *Recipe) GetID() uint64 { return r.ID }

// SetID assigns the record id.
func (r *Recipe) SetID(id uint64) { r.ID = id }
