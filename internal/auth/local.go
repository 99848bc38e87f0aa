package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kochwerk/kochwerk/internal/db/models"
)

// Provider verifies a username/password pair.
type Provider interface {
	Authenticate(username, password string) error
}

// LocalProvider handles authentication against the users table.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(username, password string) error {
	var user models.User

	err := p.db.Where("username = ?", username).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidCredentials
	}

	if err != nil {
		return fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return ErrInvalidCredentials
	}

	return nil
}
