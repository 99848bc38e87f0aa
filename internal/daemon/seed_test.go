package daemon

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kochwerk/kochwerk/internal/config"
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

func TestSeedCreatesAdmin(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{Admin: config.Admin{Username: "admin", Password: "geheim"}}

	require.NoError(t, seed(cfg, db))

	var user models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.True(t, user.Active)
	assert.True(t, user.VerifyPassword("geheim"))
}

func TestSeedIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	cfg := &config.Config{Admin: config.Admin{Username: "admin", Password: "geheim"}}

	require.NoError(t, seed(cfg, db))
	require.NoError(t, seed(cfg, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeedWritesThroughChangedPassword(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, seed(&config.Config{Admin: config.Admin{Username: "admin", Password: "alt"}}, db))
	require.NoError(t, seed(&config.Config{Admin: config.Admin{Username: "admin", Password: "neu"}}, db))

	var user models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	assert.True(t, user.VerifyPassword("neu"))
	assert.False(t, user.VerifyPassword("alt"))
}

func TestSeedSurfacesLookupFailure(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.User{}))

	cfg := &config.Config{Admin: config.Admin{Username: "admin", Password: "geheim"}}

	err := seed(cfg, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up admin user")
}
