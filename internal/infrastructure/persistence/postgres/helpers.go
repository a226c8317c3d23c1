package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

const uniqueViolation = "23505"

type scannable interface {
	Scan(dest ...any) error
}

// storeErr classifies a driver error. Missing rows become ErrNotFound,
// duplicate keys ErrConsistency, and everything else ErrPersistence.
func storeErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", valueobject.ErrNotFound, op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s: duplicate %s", valueobject.ErrConsistency, op, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %s: %w", valueobject.ErrPersistence, op, err)
}

func lockConflict(what, id string, version int) error {
	return fmt.Errorf("%w: optimistic locking conflict on %s %s at version %d",
		valueobject.ErrConsistency, what, id, version)
}

// nullTime maps the zero time onto NULL.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// nullID maps an empty optional reference onto NULL.
func nullID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func idOrEmpty(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
