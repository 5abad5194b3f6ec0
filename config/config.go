package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	OpenFoodFacts OpenFoodFactsConfig `yaml:"openfoodfacts"`
	Skylight      SkylightConfig      `yaml:"skylight"`
	Push          PushConfig          `yaml:"push"`
	WorkerPool    WorkerPoolConfig    `yaml:"worker_pool"`
	Imaging       ImagingConfig       `yaml:"imaging"`
}

// WorkerPoolConfig holds the configuration for the list push worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
// Leaving the keys empty disables notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"`
}

// OpenFoodFactsConfig configures the product database client.
type OpenFoodFactsConfig struct {
	BaseURL        string        `yaml:"base_url"`
	UserAgent      string        `yaml:"user_agent"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"`
	PageSize       int           `yaml:"page_size"`
}

// SkylightConfig configures the remote list API client.
type SkylightConfig struct {
	BaseURL         string        `yaml:"base_url"`
	TimeoutSeconds  int           `yaml:"timeout_seconds"`
	Timeout         time.Duration `yaml:"-"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // postgres or sqlite
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// ImagingConfig controls how captured photos are stored.
type ImagingConfig struct {
	MaxDimension int `yaml:"max_dimension"`
	JPEGQuality  int `yaml:"jpeg_quality"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied, suitable for tests
// and for running against a local SQLite file without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "pantry.db"
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.OpenFoodFacts.BaseURL == "" {
		cfg.OpenFoodFacts.BaseURL = "https://world.openfoodfacts.org"
	}
	if cfg.OpenFoodFacts.UserAgent == "" {
		cfg.OpenFoodFacts.UserAgent = "PantrySync/1.0 (Server; https://github.com/pantry-sync/pantry-sync-backend)"
	}
	if cfg.OpenFoodFacts.TimeoutSeconds <= 0 {
		cfg.OpenFoodFacts.TimeoutSeconds = 15
	}
	cfg.OpenFoodFacts.Timeout = time.Duration(cfg.OpenFoodFacts.TimeoutSeconds) * time.Second
	if cfg.OpenFoodFacts.PageSize <= 0 {
		cfg.OpenFoodFacts.PageSize = 20
	}

	if cfg.Skylight.BaseURL == "" {
		cfg.Skylight.BaseURL = "https://app.ourskylight.com"
	}
	if cfg.Skylight.TimeoutSeconds <= 0 {
		cfg.Skylight.TimeoutSeconds = 30
	}
	cfg.Skylight.Timeout = time.Duration(cfg.Skylight.TimeoutSeconds) * time.Second
	if cfg.Skylight.CacheTTLSeconds <= 0 {
		cfg.Skylight.CacheTTLSeconds = 600
	}
	cfg.Skylight.CacheTTL = time.Duration(cfg.Skylight.CacheTTLSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Imaging.MaxDimension <= 0 {
		cfg.Imaging.MaxDimension = 1024
	}
	if cfg.Imaging.JPEGQuality <= 0 || cfg.Imaging.JPEGQuality > 100 {
		cfg.Imaging.JPEGQuality = 85
	}
}

// PushEnabled reports whether VAPID keys are configured.
func (c PushConfig) PushEnabled() bool {
	return c.PublicKey != "" && c.PrivateKey != ""
}
