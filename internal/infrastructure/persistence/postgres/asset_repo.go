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

const assetColumns = `
	id::text, customer_id::text, broker_id::text, name, description,
	estimated_value, released, released_at, release_note,
	version, created_at, updated_at`

// AssetRepo implements port.AssetRepository.
type AssetRepo struct {
	pool *pgxpool.Pool
}

// NewAssetRepo creates a new PostgreSQL-backed asset repository.
func NewAssetRepo(pool *pgxpool.Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

// Save inserts or updates an asset. Only release state and descriptive
// fields change after creation.
func (r *AssetRepo) Save(ctx context.Context, a model.Asset) error {
	query := `
		INSERT INTO assets (
			id, customer_id, broker_id, name, description,
			estimated_value, released, released_at, release_note,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			name            = EXCLUDED.name,
			description     = EXCLUDED.description,
			estimated_value = EXCLUDED.estimated_value,
			released        = EXCLUDED.released,
			released_at     = EXCLUDED.released_at,
			release_note    = EXCLUDED.release_note,
			version         = assets.version + 1,
			updated_at      = EXCLUDED.updated_at
		WHERE assets.version = $10
	`
	tag, err := pg.Conn(ctx, r.pool).Exec(ctx, query,
		a.ID(), nullID(a.CustomerID()), nullID(a.BrokerID()), a.Name(), a.Description(),
		a.EstimatedValue(), a.IsReleased(), nullTime(a.ReleasedAt()), a.ReleaseNote(),
		a.Version(), a.CreatedAt(), a.UpdatedAt(),
	)
	if err != nil {
		return storeErr("save asset", err)
	}
	if tag.RowsAffected() == 0 {
		return lockConflict("asset", a.ID(), a.Version())
	}
	return nil
}

// FindByID retrieves an asset by ID.
func (r *AssetRepo) FindByID(ctx context.Context, id string) (model.Asset, error) {
	row := pg.Conn(ctx, r.pool).QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if err != nil {
		return model.Asset{}, storeErr(fmt.Sprintf("find asset %s", id), err)
	}
	return a, nil
}

// FindByIDs returns the assets among ids that exist, in no particular
// order. Callers compare the result length to detect missing ones.
func (r *AssetRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.scanMany(ctx, "find assets",
		`SELECT `+assetColumns+` FROM assets WHERE id = ANY($1::uuid[]) ORDER BY created_at, id`, ids)
}

// FindByCustomerID returns every asset pledged by a customer.
func (r *AssetRepo) FindByCustomerID(ctx context.Context, customerID string) ([]model.Asset, error) {
	return r.scanMany(ctx, "find assets by customer",
		`SELECT `+assetColumns+` FROM assets WHERE customer_id = $1 ORDER BY created_at, id`, customerID)
}

// List returns every asset oldest-first.
func (r *AssetRepo) List(ctx context.Context) ([]model.Asset, error) {
	return r.scanMany(ctx, "list assets", `SELECT `+assetColumns+` FROM assets ORDER BY created_at, id`)
}

func (r *AssetRepo) scanMany(ctx context.Context, op, query string, args ...any) ([]model.Asset, error) {
	rows, err := pg.Conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	var out []model.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, storeErr("scan asset", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

func scanAsset(s scannable) (model.Asset, error) {
	var (
		id, name, description, releaseNote string
		customerID, brokerID               *string
		estimatedValue                     decimal.Decimal
		released                           bool
		releasedAt                         *time.Time
		version                            int
		createdAt, updatedAt               time.Time
	)
	err := s.Scan(
		&id, &customerID, &brokerID, &name, &description,
		&estimatedValue, &released, &releasedAt, &releaseNote,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Asset{}, err
	}
	return model.ReconstructAsset(
		id, idOrEmpty(customerID), idOrEmpty(brokerID), name, description,
		estimatedValue, released, timeOrZero(releasedAt), releaseNote,
		version, createdAt, updatedAt,
	), nil
}
