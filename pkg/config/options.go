package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseMaxConnections sets the size of the connection pool.
func OptDatabaseMaxConnections(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Connections", i) {
			c.Database.MaxConnections = i
		}
	}
}

// OptClimateArchiveURL sets the endpoint of the historical weather archive.
func OptClimateArchiveURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Climate Archive URL", s) {
			c.Climate.ArchiveURL = s
		}
	}
}

// OptClimateStartDate sets the first day of the archive window.
// Format: YYYY-MM-DD.
func OptClimateStartDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Climate Start Date", s) {
			c.Climate.StartDate = s
		}
	}
}

// OptClimateEndDate sets the last day of the archive window.
// Format: YYYY-MM-DD.
func OptClimateEndDate(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidDate("Climate End Date", s) {
			c.Climate.EndDate = s
		}
	}
}

// OptClimateTimeoutSec sets the per-request archive timeout in seconds.
func OptClimateTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Climate Timeout", i) {
			c.Climate.TimeoutSec = i
		}
	}
}

// OptClimateBatchSize sets how many coordinates are fetched concurrently.
func OptClimateBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Climate Batch Size", i) {
			c.Climate.BatchSize = i
		}
	}
}

// OptClimateRateLimit sets the maximum archive requests per second.
func OptClimateRateLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Climate Rate Limit", i) {
			c.Climate.RateLimit = i
		}
	}
}

// OptClimateCacheTTLMin sets for how many minutes archive responses are
// reused.
func OptClimateCacheTTLMin(i int) Option {
	return func(c *Config) {
		if isValidInt("Climate Cache TTL", i) {
			c.Climate.CacheTTLMin = i
		}
	}
}

// OptEnrichSpeciesIDs sets the species to enrich.
// Runtime-only field - not in ToOptions().
func OptEnrichSpeciesIDs(ii []int) Option {
	return func(c *Config) {
		if len(ii) > 0 {
			c.Enrich.SpeciesIDs = ii
		}
	}
}

// OptEnrichOffline disables the climate archive.
// Runtime-only field - not in ToOptions().
func OptEnrichOffline(b bool) Option {
	return func(c *Config) {
		c.Enrich.Offline = b
	}
}

// OptEnrichSeed seeds the fallback climate estimator.
// Runtime-only field - not in ToOptions().
func OptEnrichSeed(i int64) Option {
	return func(c *Config) {
		c.Enrich.Seed = i
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of species enriched concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// Timeout returns the archive timeout as time.Duration.
func (c ClimateConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// CacheTTL returns the archive cache expiration as time.Duration.
func (c ClimateConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMin) * time.Minute
}
