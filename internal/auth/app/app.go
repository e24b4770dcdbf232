package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/parleyhq/parley/internal/auth/service"
	"github.com/parleyhq/parley/internal/auth/store"
	"github.com/parleyhq/parley/internal/auth/store/drivers/sqlite"
	"github.com/parleyhq/parley/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application owns the shared store and the credential services built on it.
// The chat frontend embeds this and calls the services directly; Run is only
// used by the maintenance daemon.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService         *service.AuthService
	roomsService        *service.RoomsService
	housekeepingService *service.HousekeepingService
}

// New creates an Application with all dependencies initialized: store opened,
// migrations applied, services wired.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "parley-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()

	return app, nil
}

// Auth exposes the credential-lifecycle service to the embedding application.
func (app *Application) Auth() *service.AuthService { return app.authService }

// Rooms exposes the chat thread bookkeeping service.
func (app *Application) Rooms() *service.RoomsService { return app.roomsService }

// Run starts the housekeeping sweeper and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("parley auth core started",
		"database", app.cfg.DatabaseFile,
		"version", BuildVersion,
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	app.logger.Info("shutdown signal received", "signal", sig)

	return app.Shutdown()
}

// Shutdown stops the sweeper and closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down...")

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("stopped")
	return nil
}

// initDatabase opens the shared sqlite database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:    app.db,
		Scheme:   app.cfg.PasswordScheme,
		ResetTTL: app.cfg.ResetTTL,
	}
	app.roomsService = &service.RoomsService{Store: app.db}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}
