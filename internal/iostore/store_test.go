package iostore

import (
	"context"

	"github.com/gnames/gnagro/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// notConnectedOperator is a db.Operator without a pool.
type notConnectedOperator struct{}

func (notConnectedOperator) Connect(context.Context, *config.DatabaseConfig) error {
	return nil
}
func (notConnectedOperator) Close() error        { return nil }
func (notConnectedOperator) Pool() *pgxpool.Pool { return nil }
func (notConnectedOperator) TableExists(context.Context, string) (bool, error) {
	return false, nil
}
func (notConnectedOperator) HasTables(context.Context) (bool, error) { return false, nil }
func (notConnectedOperator) DropAllTables(context.Context) error     { return nil }
