package mocks

import (
	"context"

	"github.com/phrazzld/teamwork-api/internal/store"
)

// MockTransactor is a mock implementation of the store.Transactor interface.
// The default behavior runs fn directly with a nil transaction handle; the
// mock stores ignore the handle in WithTx, so multi-store compositions can
// be asserted without a database.
type MockTransactor struct {
	TransactFn func(ctx context.Context, fn store.TxFn) error
}

// Verify interface compliance at compile time.
var _ store.Transactor = (*MockTransactor)(nil)

// Transact implements the store.Transactor interface.
func (m *MockTransactor) Transact(ctx context.Context, fn store.TxFn) error {
	if m.TransactFn != nil {
		return m.TransactFn(ctx, fn)
	}
	return fn(ctx, nil)
}
