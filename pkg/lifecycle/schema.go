// Package lifecycle declares contracts between the command layer and the
// impure components that manage the schema, store enrichment data and run
// the enrichment itself.
package lifecycle

import (
	"context"

	"github.com/gnames/gnagro/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and migrations.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the database schema. Existing tables are kept, the
	// caller decides if they have to be dropped first.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context, cfg *config.Config) error
}
