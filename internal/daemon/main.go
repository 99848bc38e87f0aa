// Package daemon wires the configured storage backend, the session store
// and the web service together.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	sessionmemory "github.com/gofiber/storage/memory/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kochwerk/kochwerk/internal/auth"
	catalogabout "github.com/kochwerk/kochwerk/internal/catalog/about"
	catalogequipment "github.com/kochwerk/kochwerk/internal/catalog/equipment"
	"github.com/kochwerk/kochwerk/internal/catalog/recipe"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/db/dsn"
	"github.com/kochwerk/kochwerk/internal/db/models"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	"github.com/kochwerk/kochwerk/internal/store"
	"github.com/kochwerk/kochwerk/internal/store/gormstore"
	"github.com/kochwerk/kochwerk/internal/store/jsonstore"
	"github.com/kochwerk/kochwerk/internal/web"
	"github.com/kochwerk/kochwerk/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service.
func (d *Daemon) Start() error {
	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// WaitShutdown blocks until the web service has shut down.
func (d *Daemon) WaitShutdown() {
	d.webService.WaitShutdown()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	images, err := imagestore.New(cfg.Uploads.Dir, cfg.Uploads.PublicPath, cfg.Webserver.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init image store")
		return nil
	}

	var (
		recipeStore    store.RecipeStore
		equipmentStore store.EquipmentStore
		aboutStore     store.AboutStore
		authProvider   auth.Provider
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendFile:
		log.Info().Str("data_dir", cfg.Storage.DataDir).Msg("using file storage backend")

		recipeStore = jsonstore.NewRecipes(cfg.Storage.DataDir)
		equipmentStore = jsonstore.NewEquipment(cfg.Storage.DataDir)
		aboutStore = jsonstore.NewAbout(cfg.Storage.DataDir)
		authProvider = auth.NewStaticProvider(cfg.Admin.Username, cfg.Admin.Password)

		session.Init(sessionmemory.New())
	default:
		log.Info().Str("engine", cfg.DB.Engine).Msg("using database storage backend")

		db := openDB(cfg)

		if err = db.AutoMigrate(
			&models.User{},
			&models.Recipe{},
			&models.Equipment{},
			&models.About{},
		); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
			return nil
		}

		if err = seed(cfg, db); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
			return nil
		}

		recipeStore = gormstore.NewRecipes(db)
		equipmentStore = gormstore.NewEquipment(db)
		aboutStore = gormstore.NewAbout(db)
		authProvider = auth.NewLocalProvider(db)

		session.Init(sessionStorage(cfg))
	}

	webService := web.New(cfg, web.Deps{
		AuthProvider: authProvider,
		Recipes:      recipe.New(recipeStore, images),
		Equipment:    catalogequipment.New(equipmentStore, images),
		About:        catalogabout.New(aboutStore, images),
		Images:       images,
	})

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}
}

func openDB(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector

	switch cfg.DB.Engine {
	case config.DBEngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.DBEnginePostgres:
		dialector = gormpostgres.Open(dsn.Create(cfg))
	default:
		dialector = sqlite.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	return db
}

// sessionStorage picks a session backend colocated with the configured
// database engine. Sqlite deployments keep sessions in memory; a restart
// logs the admin out, which is acceptable for a single-binary setup.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.Engine {
	case config.DBEngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	case config.DBEnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	default:
		return sessionmemory.New()
	}
}
