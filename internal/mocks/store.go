package mocks

import (
	"context"

	"github.com/kinlabs/kin-paymaster/internal/db"
)

// TestStore adapts a Querier into a db.Store whose ExecTx runs the callback
// against the same Querier with no real transaction. Rollback behavior is
// asserted in tests by checking that an error from the callback propagates.
type TestStore struct {
	db.Querier
}

// NewTestStore wraps querier, usually a MockQuerier.
func NewTestStore(querier db.Querier) *TestStore {
	return &TestStore{Querier: querier}
}

func (s *TestStore) ExecTx(_ context.Context, fn func(db.Querier) error) error {
	return fn(s.Querier)
}
