// Package config provides configuration management for gnagro.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, max_connections
//   - Climate: archive_url, start_date, end_date, timeout_sec, batch_size,
//     rate_limit, cache_ttl_min
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Enrich.SpeciesIDs, Offline, Seed (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNAGRO_ prefix with underscores for nesting:
//
//	GNAGRO_DATABASE_HOST=localhost
//	GNAGRO_DATABASE_PORT=5432
//	GNAGRO_CLIMATE_BATCH_SIZE=10
//	GNAGRO_LOG_LEVEL=info
//	GNAGRO_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnagro configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Climate contains settings of the climate archive and its fallback.
	Climate ClimateConfig `mapstructure:"climate" yaml:"climate"`

	// Enrich contains settings specific to the enrich command.
	Enrich EnrichConfig `mapstructure:"enrich" yaml:"enrich"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of species enriched concurrently.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// MaxConnections caps the pool size. Every enrichment run holds one
	// connection for its whole duration, so it should not be smaller
	// than JobsNumber.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`
}

// ClimateConfig contains settings of the historical weather archive.
type ClimateConfig struct {
	// ArchiveURL is the endpoint of the Open-Meteo historical archive API.
	ArchiveURL string `mapstructure:"archive_url" yaml:"archive_url"`

	// StartDate is the first day (YYYY-MM-DD) of the requested window.
	StartDate string `mapstructure:"start_date" yaml:"start_date"`

	// EndDate is the last day (YYYY-MM-DD) of the requested window.
	EndDate string `mapstructure:"end_date" yaml:"end_date"`

	// TimeoutSec bounds every archive request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// BatchSize is the number of coordinates fetched concurrently.
	// Batches run one after another, so it also caps outbound connections.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// RateLimit is the maximum number of archive requests per second.
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`

	// CacheTTLMin is how long (minutes) a successful archive response is
	// reused for the same rounded coordinate.
	CacheTTLMin int `mapstructure:"cache_ttl_min" yaml:"cache_ttl_min"`
}

// EnrichConfig contains runtime settings of the enrich command.
type EnrichConfig struct {
	// SpeciesIDs are the species to enrich.
	SpeciesIDs []int `mapstructure:"species_ids" yaml:"species_ids"`

	// Offline skips the climate archive, every sample comes from the
	// latitude-based estimator.
	Offline bool `mapstructure:"offline" yaml:"offline"`

	// Seed makes the estimator reproducible. Zero means a random seed.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Password:       "postgres",
			Database:       "gnagro",
			SSLMode:        "disable",
			MaxConnections: 10,
		},
		Climate: ClimateConfig{
			ArchiveURL:  "https://archive-api.open-meteo.com/v1/archive",
			StartDate:   "2015-01-01",
			EndDate:     "2023-12-31",
			TimeoutSec:  10,
			BatchSize:   10,
			RateLimit:   10,
			CacheTTLMin: 60,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
