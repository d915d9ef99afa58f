package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/codekettle/shorturl/internal/config"
	"github.com/codekettle/shorturl/internal/probe"
	"github.com/codekettle/shorturl/internal/registry"
	"github.com/codekettle/shorturl/internal/server"
)

// App holds the application dependencies and configuration.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	DBPool  *pgxpool.Pool
	Server  *server.Server
	Handler *registry.Handler

	repoCloser io.Closer
}

// New initializes and returns a new App instance with all dependencies wired up.
func New(ctx context.Context) (*App, error) {
	if err := loadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.App.LogLevel)

	logger.Info("starting application", "env", cfg.App.Environment)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	repo, err := app.setupRepository(ctx)
	if err != nil {
		return nil, err
	}

	svc := registry.NewService(repo, nil)
	prober := probe.NewDNS(probe.WithTimeout(cfg.Probe.Timeout))
	handler := registry.NewHandler(registry.HandlerConfig{
		Service: svc,
		Prober:  prober,
		Logger:  logger,
	})

	srv := server.New(cfg, logger, handler)

	logger.Info("application initialized", "port", cfg.Server.Port)

	app.Server = srv
	app.Handler = handler
	return app, nil
}

// Start starts the application server.
func (a *App) Start(ctx context.Context) error {
	a.Logger.Info("server starting", "port", a.Config.Server.Port)

	if err := a.Server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.Logger.Info("shutting down application")

	if a.DBPool != nil {
		a.DBPool.Close()
		a.Logger.Info("database connection closed")
	}
	if a.repoCloser != nil {
		if err := a.repoCloser.Close(); err != nil {
			return err
		}
		a.Logger.Info("store file closed")
	}

	return nil
}

// setupRepository selects the entry store: PostgreSQL when DATABASE_URL is
// set, an append-only file when STORAGE_FILE_PATH is set, and a plain
// in-memory map otherwise.
func (a *App) setupRepository(ctx context.Context) (registry.Repository, error) {
	cfg := a.Config

	if cfg.Database.Enabled() {
		pool, err := connectDatabase(ctx, cfg, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo, err := registry.NewPgxRepository(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		a.DBPool = pool
		return repo, nil
	}

	if cfg.Storage.FilePath != "" {
		a.Logger.Info("using file store", "path", cfg.Storage.FilePath)
		repo, err := registry.NewFileRepository(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		if closer, ok := repo.(io.Closer); ok {
			a.repoCloser = closer
		}
		return repo, nil
	}

	a.Logger.Warn("no durable store configured, entries will not survive restarts")
	return registry.NewMemoryRepository(), nil
}

// loadEnv loads .env file only in non-production environments.
func loadEnv() error {
	env := os.Getenv("APP_ENV")
	if env == "development" || env == "test" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found.")
		}
	}
	return nil
}

// setupLogger creates a structured logger based on the log level.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}

// connectDatabase establishes a connection to the PostgreSQL database.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.Database.MaxConns
	poolConfig.MinConns = cfg.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")

	return pool, nil
}
