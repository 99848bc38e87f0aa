package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kochwerk/kochwerk/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return db
}

func TestLocalProviderAuthenticate(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.User{
		Active:   true,
		Username: "admin",
		Password: models.HashPassword("geheim"),
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Active:   false,
		Username: "alt",
		Password: models.HashPassword("geheim"),
	}).Error)

	provider := NewLocalProvider(db)

	assert.NoError(t, provider.Authenticate("admin", "geheim"))
	assert.ErrorIs(t, provider.Authenticate("admin", "falsch"), ErrInvalidCredentials)
	assert.ErrorIs(t, provider.Authenticate("niemand", "geheim"), ErrInvalidCredentials)
	assert.ErrorIs(t, provider.Authenticate("alt", "geheim"), ErrUserAccountDisabled)
}

func TestStaticProviderAuthenticate(t *testing.T) {
	provider := NewStaticProvider("admin", "geheim")

	assert.NoError(t, provider.Authenticate("admin", "geheim"))
	assert.ErrorIs(t, provider.Authenticate("admin", "falsch"), ErrInvalidCredentials)
	assert.ErrorIs(t, provider.Authenticate("falsch", "geheim"), ErrInvalidCredentials)
}
