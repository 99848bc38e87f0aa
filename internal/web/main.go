// Package web assembles the fiber application serving the public catalog
// API and the admin endpoints.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/kochwerk/kochwerk/internal/auth"
	catalogabout "github.com/kochwerk/kochwerk/internal/catalog/about"
	catalogequipment "github.com/kochwerk/kochwerk/internal/catalog/equipment"
	"github.com/kochwerk/kochwerk/internal/catalog/recipe"
	"github.com/kochwerk/kochwerk/internal/config"
	"github.com/kochwerk/kochwerk/internal/imagestore"
	fiberlogger "github.com/kochwerk/kochwerk/internal/logger/adapter/fiber"
	"github.com/kochwerk/kochwerk/internal/web/handler"
	abouthandler "github.com/kochwerk/kochwerk/internal/web/handler/about"
	equipmenthandler "github.com/kochwerk/kochwerk/internal/web/handler/equipment"
	"github.com/kochwerk/kochwerk/internal/web/handler/health"
	"github.com/kochwerk/kochwerk/internal/web/handler/instagram"
	"github.com/kochwerk/kochwerk/internal/web/handler/login"
	"github.com/kochwerk/kochwerk/internal/web/handler/logout"
	recipeshandler "github.com/kochwerk/kochwerk/internal/web/handler/recipes"
	"github.com/kochwerk/kochwerk/internal/web/handler/upload"
)

// bodyLimitSlack leaves room for the multipart framing around an upload at
// the configured maximum size.
const bodyLimitSlack = 1 << 20

// Deps bundles everything the handlers need.
type Deps struct {
	AuthProvider auth.Provider
	Recipes      *recipe.Service
	Equipment    *catalogequipment.Service
	About        *catalogabout.Service
	Images       *imagestore.Store
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      int(cfg.Uploads.MaxSize) + bodyLimitSlack,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: health.Path,
	}))

	// uploaded images are served straight from disk
	app.Static(cfg.Uploads.PublicPath, cfg.Uploads.Dir)

	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	health.Handler.Init(app, cfg, &service.alive)
	instagram.Handler.Init(app, cfg)
	logout.Handler.Init(app, cfg)

	if err := login.Handler.Init(app, cfg, deps.AuthProvider); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	if err := recipeshandler.Handler.Init(app, cfg, deps.Recipes); err != nil {
		log.Fatal().Err(err).Msg("failed to init recipes handler")
	}

	if err := equipmenthandler.Handler.Init(app, cfg, deps.Equipment); err != nil {
		log.Fatal().Err(err).Msg("failed to init equipment handler")
	}

	if err := abouthandler.Handler.Init(app, cfg, deps.About); err != nil {
		log.Fatal().Err(err).Msg("failed to init about handler")
	}

	if err := upload.Handler.Init(app, cfg, deps.Images); err != nil {
		log.Fatal().Err(err).Msg("failed to init upload handler")
	}

	return service
}
