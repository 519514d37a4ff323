// Package iostore implements enrichment storage on PostgreSQL. Every
// enrichment run gets its own Session that holds one pooled connection.
// Writes of derived profiles run in short transactions guarded by a
// per-species advisory lock, so concurrent runs for the same species are
// serialized while different species proceed in parallel.
package iostore

import (
	"context"
	"log/slog"

	"github.com/gnames/gnagro/pkg/db"
	"github.com/gnames/gnagro/pkg/lifecycle"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Conn is the subset of a pgx connection used by a session. Both
// *pgxpool.Conn and pgxmock connections satisfy it.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store gives out sessions backed by the operator's pool.
type Store struct {
	op db.Operator
}

// New creates a Store. The operator has to be connected before the first
// session is requested.
func New(op db.Operator) *Store {
	return &Store{op: op}
}

// Session acquires a connection from the pool.
func (s *Store) Session(ctx context.Context) (lifecycle.Session, error) {
	pool := s.op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, AcquireConnError(err)
	}
	slog.Debug("Session acquired",
		"total_conns", pool.Stat().TotalConns())
	return NewSession(conn, conn.Release), nil
}
