package models

import (
	"time"
)

// About is the singleton "about me" section shown on the public site.
// At most one row exists; updating creates it when absent.
type About struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Title is the section headline.
	Title string `gorm:"size:255;not null" json:"title"`
	// Content is the section body text.
	Content string `gorm:"type:text;not null" json:"content"`
	// Image is an opaque image reference, same encoding rules as Recipe.Image.
	Image     *string   `gorm:"size:2048" json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID returns the record id.
func (a *About) GetID() uint64 { return a.ID }

// SetID assigns the record id.
func (a *About) SetID(id uint64) { a.ID = id }
