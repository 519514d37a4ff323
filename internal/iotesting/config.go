// Package iotesting provides shared test utilities. This is an internal
// package for test infrastructure only.
package iotesting

import (
	"strings"
	"testing"

	"github.com/gnames/gnagro/pkg/config"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnagro_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from defaults, applies GNAGRO_DATABASE_* environment
// variables and always sets the database name to TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	v := viper.New()
	v.SetEnvPrefix("GNAGRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseHost(v.GetString("database.host")),
		config.OptDatabasePort(v.GetInt("database.port")),
		config.OptDatabaseUser(v.GetString("database.user")),
		config.OptDatabasePassword(v.GetString("database.password")),
		config.OptDatabaseSSLMode(v.GetString("database.ssl_mode")),
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptLogDestination("stderr"),
	})
	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// OfflineConfig returns a configuration for tests that must not reach the
// climate archive. The estimator is seeded so results are reproducible.
func OfflineConfig(t *testing.T, jobs int) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptEnrichOffline(true),
		config.OptEnrichSeed(42),
		config.OptJobsNumber(jobs),
		config.OptLogDestination("stderr"),
	})
	return cfg
}
