package auth

import (
	"crypto/subtle"

	"github.com/kochwerk/kochwerk/internal/db/models"
)

// StaticProvider authenticates against the single credential pair from the
// configuration. It backs the file storage mode, where no users table
// exists. The password is hashed once at construction so verification runs
// through the same Argon2id comparison as database logins.
type StaticProvider struct {
	user models.User
}

// NewStaticProvider creates a provider for the given credential pair.
func NewStaticProvider(username, password string) *StaticProvider {
	return &StaticProvider{
		user: models.User{
			Active:   true,
			Username: username,
			Password: models.HashPassword(password),
		},
	}
}

// Authenticate verifies the pair against the configured credentials.
func (p *StaticProvider) Authenticate(username, password string) error {
	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(p.user.Username)) == 1

	// run the password comparison regardless so a wrong username costs the
	// same as a wrong password
	if !p.user.VerifyPassword(password) || !usernameMatch {
		return ErrInvalidCredentials
	}

	return nil
}
