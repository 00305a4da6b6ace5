package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store composes the generated Querier with transaction execution. The
// paymaster's ledger invariants depend on running each forwarded operation
// inside a single database transaction, so services depend on this interface
// rather than on Queries directly.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// SQLStore is the pgx-backed Store implementation.
type SQLStore struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		Queries: New(pool),
		pool:    pool,
	}
}

// ExecTx runs fn inside a database transaction. The transaction commits only
// if fn returns nil; any error rolls every effect back.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// Pool exposes the underlying connection pool (health checks, shutdown).
func (s *SQLStore) Pool() *pgxpool.Pool {
	return s.pool
}
