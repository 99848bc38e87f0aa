package models

import (
	"time"
)

// Equipment represents a piece of kitchen equipment recommended on the site.
type Equipment struct {
	// ID is the unique identifier for the equipment item.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is the display name of the item.
	Name string `gorm:"size:255;not null" json:"name"`
	// Description is an optional free-text description.
	Description *string `gorm:"type:text" json:"description"`
	// Image is an opaque image reference, same encoding rules as Recipe.Image.
	Image *string `gorm:"size:2048" json:"image"`
	// Link is the outbound shop or manufacturer URL.
	Link string `gorm:"size:500;not null" json:"link"`
	// Category is a free-form label used for grouping and filtering.
	Category string `gorm:"size:100;not null;index" json:"category"`
	// CreatedAt is the creation timestamp (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the last modification timestamp (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the record id.
func (e *Equipment) GetID() uint64 { return e.ID }

// SetID assigns the record id.
func (e *Equipment) SetID(id uint64) { e.ID = id }
