package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
)

// txContextKey carries the active pgx transaction through the context, so every
// repository call inside a TransactionManager.WithinTx block lands on the same
// transaction without any shared session state on the repositories themselves.
type txContextKey struct{}

// dbConn is the common query surface of *pgxpool.Pool and pgx.Tx.
type dbConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// conn returns the transaction bound to ctx when one is active, otherwise the
// pool. Repositories never branch on transactional state themselves.
func (r *BaseRepository) conn(ctx context.Context) dbConn {
	if tx, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// PgxTransactionManager runs functions inside a database transaction carried in
// the context.
type PgxTransactionManager struct {
	Pool *pgxpool.Pool
}

// NewPgxTransactionManager creates the pgx-backed transaction manager.
func NewPgxTransactionManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &PgxTransactionManager{Pool: pool}
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

// WithinTx begins a transaction, stores it in the context and runs fn. The
// transaction commits only when fn returns nil; any error rolls back everything
// fn did. A WithinTx call inside an already-active transaction joins it instead
// of nesting.
func (m *PgxTransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.Pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}
