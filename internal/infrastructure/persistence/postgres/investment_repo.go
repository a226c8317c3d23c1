package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	pg "github.com/sharada0417/RanRevHoldings-sub000/pkg/postgres"
)

const investmentColumns = `
	id::text, customer_id::text, broker_id::text,
	principal, interest_rate, commission_rate, start_date,
	interest_paid, principal_paid, total_paid, remaining_pending,
	last_payment_amount, last_payment_at,
	broker_paid, last_broker_payment_amount, last_broker_payment_at,
	version, created_at, updated_at`

// InvestmentRepo implements port.InvestmentRepository. An investment row and
// its asset links are written together.
type InvestmentRepo struct {
	pool *pgxpool.Pool
	tx   *TxManager
	loc  *time.Location
}

// NewInvestmentRepo creates a new PostgreSQL-backed investment repository.
// Start dates are read back in loc, since month counting compares
// day-of-month in the start date's zone. A nil loc means UTC.
func NewInvestmentRepo(pool *pgxpool.Pool, tx *pg.TxManager, loc *time.Location) *InvestmentRepo {
	if loc == nil {
		loc = time.UTC
	}
	return &InvestmentRepo{pool: pool, tx: NewTxManager(tx), loc: loc}
}

// Save persists an investment. A NULL remaining_pending keeps the derived
// variant of the remaining principal.
func (r *InvestmentRepo) Save(ctx context.Context, inv model.Investment) error {
	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		q := pg.Conn(ctx, r.pool)

		query := `
			INSERT INTO investments (
				id, customer_id, broker_id,
				principal, interest_rate, commission_rate, start_date,
				interest_paid, principal_paid, total_paid, remaining_pending,
				last_payment_amount, last_payment_at,
				broker_paid, last_broker_payment_amount, last_broker_payment_at,
				version, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
			ON CONFLICT (id) DO UPDATE SET
				interest_paid              = EXCLUDED.interest_paid,
				principal_paid             = EXCLUDED.principal_paid,
				total_paid                 = EXCLUDED.total_paid,
				remaining_pending          = EXCLUDED.remaining_pending,
				last_payment_amount        = EXCLUDED.last_payment_amount,
				last_payment_at            = EXCLUDED.last_payment_at,
				broker_paid                = EXCLUDED.broker_paid,
				last_broker_payment_amount = EXCLUDED.last_broker_payment_amount,
				last_broker_payment_at     = EXCLUDED.last_broker_payment_at,
				version                    = investments.version + 1,
				updated_at                 = EXCLUDED.updated_at
			WHERE investments.version = $17
		`
		tag, err := q.Exec(ctx, query,
			inv.ID(), inv.CustomerID(), inv.BrokerID(),
			inv.Principal(), inv.InterestRate(), inv.CommissionRate(), inv.StartDate(),
			inv.InterestPaid(), inv.PrincipalPaid(), inv.TotalPaid(), inv.Remaining().Nullable(),
			inv.LastPaymentAmount(), nullTime(inv.LastPaymentAt()),
			inv.BrokerPaid(), inv.LastBrokerPaymentAmount(), nullTime(inv.LastBrokerPaymentAt()),
			inv.Version(), inv.CreatedAt(), inv.UpdatedAt(),
		)
		if err != nil {
			return storeErr("save investment", err)
		}
		if tag.RowsAffected() == 0 {
			return lockConflict("investment", inv.ID(), inv.Version())
		}

		// Asset links are fixed at origination.
		if inv.Version() == 1 {
			for pos, assetID := range inv.AssetIDs() {
				_, err := q.Exec(ctx, `
					INSERT INTO investment_assets (investment_id, asset_id, position)
					VALUES ($1, $2, $3)
					ON CONFLICT (investment_id, asset_id) DO NOTHING
				`, inv.ID(), assetID, pos)
				if err != nil {
					return storeErr(fmt.Sprintf("link asset %s", assetID), err)
				}
			}
		}
		return nil
	})
}

// FindByID retrieves an investment with its asset links.
func (r *InvestmentRepo) FindByID(ctx context.Context, id string) (model.Investment, error) {
	snap, err := scanInvestment(pg.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+investmentColumns+` FROM investments WHERE id = $1`, id))
	if err != nil {
		return model.Investment{}, storeErr(fmt.Sprintf("find investment %s", id), err)
	}
	links, err := r.loadAssetLinks(ctx, []string{id})
	if err != nil {
		return model.Investment{}, err
	}
	snap.AssetIDs = links[id]
	snap.StartDate = snap.StartDate.In(r.loc)
	return model.ReconstructInvestment(snap), nil
}

// FindByCustomerID returns a customer's investments oldest-first.
func (r *InvestmentRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.Investment, error) {
	return r.scanMany(ctx, "find investments by customer",
		`SELECT `+investmentColumns+` FROM investments WHERE customer_id = $1 ORDER BY created_at, id`, customerID)
}

// FindByBrokerID returns a broker's investments oldest-first.
func (r *InvestmentRepo) FindByBrokerID(ctx context.Context, brokerID string) ([]model.Investment, error) {
	return r.scanMany(ctx, "find investments by broker",
		`SELECT `+investmentColumns+` FROM investments WHERE broker_id = $1 ORDER BY created_at, id`, brokerID)
}

// List returns every investment oldest-first.
func (r *InvestmentRepo) List(ctx context.Context) ([]model.Investment, error) {
	return r.scanMany(ctx, "list investments",
		`SELECT `+investmentColumns+` FROM investments ORDER BY created_at, id`)
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func (r *InvestmentRepo) scanMany(ctx context.Context, op, query string, args ...any) ([]model.Investment, error) {
	rows, err := pg.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var snaps []model.InvestmentSnapshot
	for rows.Next() {
		snap, err := scanInvestment(rows)
		if err != nil {
			return nil, storeErr("scan investment", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	if len(snaps) == 0 {
		return nil, nil
	}

	ids := make([]string, len(snaps))
	for i, s := range snaps {
		ids[i] = s.ID
	}
	links, err := r.loadAssetLinks(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.Investment, len(snaps))
	for i, s := range snaps {
		s.AssetIDs = links[s.ID]
		s.StartDate = s.StartDate.In(r.loc)
		out[i] = model.ReconstructInvestment(s)
	}
	return out, nil
}

func (r *InvestmentRepo) loadAssetLinks(ctx context.Context, investmentIDs []string) (map[string][]string, error) {
	rows, err := pg.Conn(ctx, r.pool).Query(ctx, `
		SELECT investment_id::text, asset_id::text
		FROM investment_assets
		WHERE investment_id = ANY($1::uuid[])
		ORDER BY investment_id, position
	`, investmentIDs)
	if err != nil {
		return nil, storeErr("load asset links", err)
	}
	defer rows.Close()

	links := make(map[string][]string, len(investmentIDs))
	for rows.Next() {
		var investmentID, assetID string
		if err := rows.Scan(&investmentID, &assetID); err != nil {
			return nil, storeErr("scan asset link", err)
		}
		links[investmentID] = append(links[investmentID], assetID)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("load asset links", err)
	}
	return links, nil
}

func scanInvestment(s scannable) (model.InvestmentSnapshot, error) {
	var (
		snap                               model.InvestmentSnapshot
		remaining                          decimal.NullDecimal
		lastPaymentAt, lastBrokerPaymentAt *time.Time
	)
	err := s.Scan(
		&snap.ID, &snap.CustomerID, &snap.BrokerID,
		&snap.Principal, &snap.InterestRate, &snap.CommissionRate, &snap.StartDate,
		&snap.InterestPaid, &snap.PrincipalPaid, &snap.TotalPaid, &remaining,
		&snap.LastPaymentAmount, &lastPaymentAt,
		&snap.BrokerPaid, &snap.LastBrokerPaymentAmount, &lastBrokerPaymentAt,
		&snap.Version, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return model.InvestmentSnapshot{}, err
	}
	snap.Remaining = valueobject.RemainingFromNullable(remaining)
	snap.LastPaymentAt = timeOrZero(lastPaymentAt)
	snap.LastBrokerPaymentAt = timeOrZero(lastBrokerPaymentAt)
	return snap, nil
}
