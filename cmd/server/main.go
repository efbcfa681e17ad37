package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/res5515/jcommune/internal/api"
	"github.com/res5515/jcommune/internal/config"
	"github.com/res5515/jcommune/internal/factory"
	redisstorage "github.com/res5515/jcommune/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Build factory config
	fcfg := factory.Config{
		Logger:            logger,
		StorageType:       cfg.StorageType,
		BaseURL:           cfg.BaseURL,
		AuthPluginURL:     cfg.AuthPluginURL,
		AuthPluginEnabled: cfg.AuthPluginEnabled,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		fcfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(fcfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Merge operator-provided locale catalogs
	if cfg.MessagesDir != "" {
		if err := loadCatalogs(app, cfg.MessagesDir); err != nil {
			logger.Warn("could not load message catalogs", slog.String("error", err.Error()))
		}
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		AuthService:   app.AuthService,
		Sessions:      app.Sessions,
		BranchService: app.BranchService,
		Storage:       app.Storage,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// loadCatalogs merges every "<locale>.properties" file in dir into the
// application's message catalog.
func loadCatalogs(app *factory.App, dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.properties"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		locale := strings.TrimSuffix(filepath.Base(path), ".properties")
		if err := app.Catalog.LoadFromFile(locale, path); err != nil {
			return err
		}
	}
	return nil
}

// logLevel maps the configured level name to a slog level
func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
