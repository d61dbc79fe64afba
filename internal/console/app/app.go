package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/opsdeck/console/internal/console/http"
	"github.com/opsdeck/console/internal/console/service"
	"github.com/opsdeck/console/internal/console/store"
	"github.com/opsdeck/console/internal/console/store/drivers/sqlite"
	"github.com/opsdeck/console/pkg/cryptox"
	"github.com/opsdeck/console/pkg/slogx"
	"github.com/opsdeck/console/pkg/tokenx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the console service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	signer *tokenx.Signer

	// Services
	sessionService      *service.SessionService
	accountService      *service.AccountService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "console-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigner(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := app.accountService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to seed admin account: %w", err)
		}
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("console service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("console service stopped")
	return nil
}

// Handler exposes the HTTP surface for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Services exposes the account service for in-process tests.
func (app *Application) Accounts() *service.AccountService {
	return app.accountService
}

// initDatabase initializes the database and applies migrations
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

// initSigner initializes the signing key for mailed action tokens. Without a
// seed file the key is ephemeral and outstanding links die on restart.
func (app *Application) initSigner() error {
	var err error
	if app.cfg.TokenSeedFile != "" {
		app.signer, err = tokenx.NewSignerFromSeedFile(app.cfg.Issuer, app.cfg.TokenSeedFile)
	} else {
		app.signer, err = tokenx.NewSigner(app.cfg.Issuer)
		app.logger.Warn("action token keys are ephemeral; mailed links will not survive a restart")
	}
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	mailer, err := app.buildMailer()
	if err != nil {
		return err
	}

	app.sessionService = &service.SessionService{
		Store: app.db,
		TTL:   app.cfg.SessionTTL,
	}

	app.accountService = &service.AccountService{
		Store:      app.db,
		Sessions:   app.sessionService,
		Signer:     app.signer,
		Mailer:     mailer,
		ConsoleURL: app.cfg.ConsoleURL,
	}

	app.userService = &service.UserService{
		Store:    app.db,
		Sessions: app.sessionService,
		Accounts: app.accountService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

func (app *Application) buildMailer() (service.Mailer, error) {
	if app.cfg.MailMode != "smtp" {
		app.logger.Info("mail delivery in log mode; set CONSOLE_MAIL_MODE=smtp for real mail")
		return &service.LogMailer{Logger: app.logger}, nil
	}

	mailer, err := service.NewSMTPMailer(service.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize smtp mailer: %w", err)
	}
	return mailer, nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.SessionService = app.sessionService
	router.AccountService = app.accountService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
