// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"
	"sort"

	"github.com/gnames/gnagro/pkg/config"
	"github.com/gnames/gnagro/pkg/db"
	"github.com/gnames/gnagro/pkg/lifecycle"
	"github.com/gnames/gnagro/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema using GORM AutoMigrate
// and adds month range checks.
func (m *manager) Create(
	ctx context.Context,
	_ *config.Config,
) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.setMonthChecks(ctx); err != nil {
		return err
	}
	slog.Info("Schema created", "tables", len(schema.AllModels()))
	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(
	ctx context.Context,
	_ *config.Config,
) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.setMonthChecks(ctx); err != nil {
		return err
	}
	slog.Info("Schema migrated")
	return nil
}

func (m *manager) gorm() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// setMonthChecks (re)creates CHECK constraints that keep month
// columns within 1-12.
func (m *manager) setMonthChecks(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	cols := schema.MonthColumns()
	tables := make([]string, 0, len(cols))
	for k := range cols {
		tables = append(tables, k)
	}
	sort.Strings(tables)

	for _, table := range tables {
		for _, col := range cols[table] {
			q := formatMonthCheckSQL(table, col)
			if _, err := pool.Exec(ctx, q); err != nil {
				return MonthCheckError(table, col, err)
			}
		}
	}

	return nil
}
