package daemon

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/db/models"
)

// seed ensures the configured admin account exists and carries the
// configured password. The credential pair in the configuration is
// authoritative, so a changed password is written through on start.
func seed(cfg *config.Config, db *gorm.DB) error {
	var user models.User

	err := db.Where("username = ?", cfg.Admin.Username).First(&user).Error

	switch {
	case err == nil:
		if !user.VerifyPassword(cfg.Admin.Password) {
			log.Info().Str("username", user.Username).Msg("admin password changed, writing through")

			user.Password = models.HashPassword(cfg.Admin.Password)
			if err := db.Save(&user).Error; err != nil {
				return pkgerrors.Wrap(err, "failed to update admin password")
			}
		}

		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.Wrap(
			db.Create(
				&models.User{
					Username: cfg.Admin.Username,
					Password: models.HashPassword(cfg.Admin.Password),
					Active:   true,
				},
			).Error,
			"failed to seed admin user",
		)
	default:
		return pkgerrors.Wrap(err, "failed to look up admin user")
	}
}
