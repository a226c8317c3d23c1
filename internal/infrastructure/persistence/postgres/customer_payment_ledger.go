package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	pg "github.com/sharada0417/RanRevHoldings-sub000/pkg/postgres"
)

const customerPaymentColumns = `
	id::text, investment_id::text, customer_id::text, broker_id::text,
	amount, interest_part, principal_part, excess_amount, mode, method,
	interest_paid_total, principal_paid_total, total_paid,
	remaining_principal, principal_fully_paid, note, paid_at`

// CustomerPaymentLedger implements port.CustomerPaymentLedger. Rows are only
// ever inserted.
type CustomerPaymentLedger struct {
	pool *pgxpool.Pool
}

// NewCustomerPaymentLedger creates a new PostgreSQL-backed ledger.
func NewCustomerPaymentLedger(pool *pgxpool.Pool) *CustomerPaymentLedger {
	return &CustomerPaymentLedger{pool: pool}
}

// Append inserts one ledger entry.
func (l *CustomerPaymentLedger) Append(ctx context.Context, p model.CustomerPayment) error {
	query := `
		INSERT INTO customer_payments (
			id, investment_id, customer_id, broker_id,
			amount, interest_part, principal_part, excess_amount, mode, method,
			interest_paid_total, principal_paid_total, total_paid,
			remaining_principal, principal_fully_paid, note, paid_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`
	_, err := pg.Conn(ctx, l.pool).Exec(ctx, query,
		p.ID(), p.InvestmentID(), p.CustomerID(), p.BrokerID(),
		p.Amount(), p.InterestPart(), p.PrincipalPart(), p.ExcessAmount(), p.Mode().String(), p.Method().String(),
		p.InterestPaidTotal(), p.PrincipalPaidTotal(), p.TotalPaid(),
		p.RemainingPrincipal(), p.PrincipalFullyPaid(), p.Note(), p.PaidAt(),
	)
	if err != nil {
		return storeErr("append customer payment", err)
	}
	return nil
}

// FindByInvestmentID returns the entries of one investment oldest-first.
func (l *CustomerPaymentLedger) FindByInvestmentID(ctx context.Context, investmentID string) ([]model.CustomerPayment, error) {
	return l.scanMany(ctx, "find customer payments by investment",
		`SELECT `+customerPaymentColumns+` FROM customer_payments
		 WHERE investment_id = $1 ORDER BY paid_at, id`, investmentID)
}

// FindByCustomerID returns the entries of one customer oldest-first.
func (l *CustomerPaymentLedger) FindByCustomerID(ctx context.Context, customerID string) ([]model.CustomerPayment, error) {
	return l.scanMany(ctx, "find customer payments by customer",
		`SELECT `+customerPaymentColumns+` FROM customer_payments
		 WHERE customer_id = $1 ORDER BY paid_at, id`, customerID)
}

// ListBetween returns the entries paid in [from, to) oldest-first.
func (l *CustomerPaymentLedger) ListBetween(ctx context.Context, from, to time.Time) ([]model.CustomerPayment, error) {
	return l.scanMany(ctx, "list customer payments",
		`SELECT `+customerPaymentColumns+` FROM customer_payments
		 WHERE paid_at >= $1 AND paid_at < $2 ORDER BY paid_at, id`, from, to)
}

func (l *CustomerPaymentLedger) scanMany(ctx context.Context, op, query string, args ...any) ([]model.CustomerPayment, error) {
	rows, err := pg.Conn(ctx, l.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var out []model.CustomerPayment
	for rows.Next() {
		p, err := scanCustomerPayment(rows)
		if err != nil {
			return nil, storeErr("scan customer payment", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

func scanCustomerPayment(s scannable) (model.CustomerPayment, error) {
	var (
		snap               model.CustomerPaymentSnapshot
		modeStr, methodStr string
	)
	err := s.Scan(
		&snap.ID, &snap.InvestmentID, &snap.CustomerID, &snap.BrokerID,
		&snap.Amount, &snap.InterestPart, &snap.PrincipalPart, &snap.ExcessAmount, &modeStr, &methodStr,
		&snap.InterestPaidTotal, &snap.PrincipalPaidTotal, &snap.TotalPaid,
		&snap.RemainingPrincipal, &snap.PrincipalFullyPaid, &snap.Note, &snap.PaidAt,
	)
	if err != nil {
		return model.CustomerPayment{}, err
	}

	snap.Mode, err = valueobject.NewAllocationMode(modeStr)
	if err != nil {
		return model.CustomerPayment{}, fmt.Errorf("stored payment %s: %w", snap.ID, err)
	}
	snap.Method, err = valueobject.NewPaymentMethod(methodStr)
	if err != nil {
		return model.CustomerPayment{}, fmt.Errorf("stored payment %s: %w", snap.ID, err)
	}
	return model.ReconstructCustomerPayment(snap), nil
}
