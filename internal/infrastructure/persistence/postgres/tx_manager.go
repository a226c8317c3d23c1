package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	pg "github.com/sharada0417/RanRevHoldings-sub000/pkg/postgres"
)

type transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxManager implements port.TxManager. Errors from the unit of work pass
// through unchanged; failing to begin, commit or roll back is ErrPersistence.
type TxManager struct {
	inner transactor
}

func NewTxManager(inner transactor) *TxManager {
	return &TxManager{inner: inner}
}

func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.inner.WithinTransaction(ctx, fn)
	if err == nil || !errors.Is(err, pg.ErrTx) || errors.Is(err, valueobject.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", valueobject.ErrPersistence, err)
}
