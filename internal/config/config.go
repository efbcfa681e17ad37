// Package config loads server configuration from the environment.
package config

import "github.com/caarlos0/env/v11"

// Config holds server configuration
type Config struct {
	Host string `env:"HOST" envDefault:""`
	Port int    `env:"PORT" envDefault:"8080"`

	// BaseURL is the public root of the forum, used in activation links
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	// AuthPluginURL points at an external identity provider. Empty means
	// no plugin is registered.
	AuthPluginURL     string `env:"AUTH_PLUGIN_URL"`
	AuthPluginEnabled bool   `env:"AUTH_PLUGIN_ENABLED" envDefault:"true"`

	// MessagesDir holds extra locale catalogs ("<locale>.properties")
	MessagesDir string `env:"MESSAGES_DIR"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
