package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/res5515/jcommune/internal/dependencies/clock"
	"github.com/res5515/jcommune/internal/i18n"
	"github.com/res5515/jcommune/internal/plugin"
	"github.com/res5515/jcommune/internal/plugin/httpauth"
	"github.com/res5515/jcommune/internal/services/auth"
	"github.com/res5515/jcommune/internal/services/avatar"
	"github.com/res5515/jcommune/internal/services/branch"
	"github.com/res5515/jcommune/internal/services/mail"
	"github.com/res5515/jcommune/internal/services/session"
	"github.com/res5515/jcommune/internal/storage"
	"github.com/res5515/jcommune/internal/storage/memory"
	redisstorage "github.com/res5515/jcommune/internal/storage/redis"
	"github.com/res5515/jcommune/internal/validation"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Plugins *plugin.Registry

	// Services
	Catalog       *i18n.Catalog
	Sessions      *session.Manager
	AuthService   *auth.Service
	BranchService *branch.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// BaseURL is the public root of the forum, used in activation links
	BaseURL string
	// AuthPluginURL points at an external identity provider (optional)
	AuthPluginURL string
	// AuthPluginEnabled controls the registered plugin's state
	AuthPluginEnabled bool
	// SessionConfig holds session durations (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()

	registry := plugin.NewRegistry()
	if cfg.AuthPluginURL != "" {
		pluginCfg := httpauth.DefaultConfig()
		pluginCfg.BaseURL = cfg.AuthPluginURL
		pluginCfg.Enabled = cfg.AuthPluginEnabled
		registry.Register(httpauth.New(pluginCfg))
	}

	// Use default session config if not provided
	sessionCfg := cfg.SessionConfig
	if sessionCfg.SessionDuration == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, clk, registry, sessionCfg, cfg.BaseURL, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, registry *plugin.Registry,
	sessionCfg session.Config, baseURL string, logger *slog.Logger) *App {
	catalog := i18n.NewCatalog()
	sessions := session.NewManager(clk, sessionCfg, logger)

	authService := auth.New(auth.Deps{
		Storage:    store,
		Plugins:    registry,
		Hasher:     auth.NewBcryptHasher(),
		Verifier:   auth.NewStoreVerifier(store),
		Sessions:   sessions,
		RememberMe: session.NewRememberMe(sessions),
		Mail:       mail.New(logger, baseURL),
		Avatars:    avatar.New(),
		Validator:  validation.New(),
		Translator: auth.NewErrorCodeTranslator(catalog),
		Clock:      clk,
		Logger:     logger,
	})

	branchService := branch.New(store, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		Plugins:       registry,
		Catalog:       catalog,
		Sessions:      sessions,
		AuthService:   authService,
		BranchService: branchService,
	}
}
