package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	pg "github.com/sharada0417/RanRevHoldings-sub000/pkg/postgres"
)

// BrokerPaymentLedger implements port.BrokerPaymentLedger. A payment and its
// allocation lines are inserted together and never changed.
type BrokerPaymentLedger struct {
	pool *pgxpool.Pool
	tx   *TxManager
}

// NewBrokerPaymentLedger creates a new PostgreSQL-backed ledger.
func NewBrokerPaymentLedger(pool *pgxpool.Pool, tx *pg.TxManager) *BrokerPaymentLedger {
	return &BrokerPaymentLedger{pool: pool, tx: NewTxManager(tx)}
}

// Append inserts a payment with its allocations.
func (l *BrokerPaymentLedger) Append(ctx context.Context, p model.BrokerPayment) error {
	return l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		q := pg.Conn(ctx, l.pool)
		_, err := q.Exec(ctx, `
			INSERT INTO broker_payments (id, broker_id, amount, note, paid_at)
			VALUES ($1, $2, $3, $4, $5)
		`, p.ID(), p.BrokerID(), p.Amount(), p.Note(), p.PaidAt())
		if err != nil {
			return storeErr("append broker payment", err)
		}

		for pos, a := range p.Allocations() {
			_, err := q.Exec(ctx, `
				INSERT INTO broker_payment_allocations (payment_id, investment_id, position, amount)
				VALUES ($1, $2, $3, $4)
			`, p.ID(), a.InvestmentID, pos, a.Amount)
			if err != nil {
				return storeErr(fmt.Sprintf("append allocation to %s", a.InvestmentID), err)
			}
		}
		return nil
	})
}

// FindByBrokerID returns a broker's payments oldest-first.
func (l *BrokerPaymentLedger) FindByBrokerID(ctx context.Context, brokerID string) ([]model.BrokerPayment, error) {
	return l.scanMany(ctx, "find broker payments",
		`SELECT id::text, broker_id::text, amount, note, paid_at FROM broker_payments
		 WHERE broker_id = $1 ORDER BY paid_at, id`, brokerID)
}

// ListBetween returns the payments made in [from, to) oldest-first.
func (l *BrokerPaymentLedger) ListBetween(ctx context.Context, from, to time.Time) ([]model.BrokerPayment, error) {
	return l.scanMany(ctx, "list broker payments",
		`SELECT id::text, broker_id::text, amount, note, paid_at FROM broker_payments
		 WHERE paid_at >= $1 AND paid_at < $2 ORDER BY paid_at, id`, from, to)
}

type brokerPaymentRow struct {
	id, brokerID, note string
	amount             decimal.Decimal
	paidAt             time.Time
}

func (l *BrokerPaymentLedger) scanMany(ctx context.Context, op, query string, args ...any) ([]model.BrokerPayment, error) {
	rows, err := pg.Conn(ctx, l.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var heads []brokerPaymentRow
	for rows.Next() {
		var h brokerPaymentRow
		if err := rows.Scan(&h.id, &h.brokerID, &h.amount, &h.note, &h.paidAt); err != nil {
			return nil, storeErr("scan broker payment", err)
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	if len(heads) == 0 {
		return nil, nil
	}

	ids := make([]string, len(heads))
	for i, h := range heads {
		ids[i] = h.id
	}
	allocs, err := l.loadAllocations(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.BrokerPayment, len(heads))
	for i, h := range heads {
		out[i] = model.ReconstructBrokerPayment(h.id, h.brokerID, h.amount, allocs[h.id], h.note, h.paidAt)
	}
	return out, nil
}

func (l *BrokerPaymentLedger) loadAllocations(ctx context.Context, paymentIDs []string) (map[string][]model.BrokerAllocation, error) {
	rows, err := pg.Conn(ctx, l.pool).Query(ctx, `
		SELECT payment_id::text, investment_id::text, amount
		FROM broker_payment_allocations
		WHERE payment_id = ANY($1::uuid[])
		ORDER BY payment_id, position
	`, paymentIDs)
	if err != nil {
		return nil, storeErr("load allocations", err)
	}
	defer rows.Close()

	out := make(map[string][]model.BrokerAllocation, len(paymentIDs))
	for rows.Next() {
		var (
			paymentID string
			a         model.BrokerAllocation
		)
		if err := rows.Scan(&paymentID, &a.InvestmentID, &a.Amount); err != nil {
			return nil, storeErr("scan allocation", err)
		}
		out[paymentID] = append(out[paymentID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("load allocations", err)
	}
	return out, nil
}
