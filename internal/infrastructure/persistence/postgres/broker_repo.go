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

const brokerColumns = `id::text, nic, name, phone, address, version, created_at, updated_at`

// BrokerRepo implements port.BrokerRepository.
type BrokerRepo struct {
	pool *pgxpool.Pool
}

// NewBrokerRepo creates a new PostgreSQL-backed broker repository.
func NewBrokerRepo(pool *pgxpool.Pool) *BrokerRepo {
	return &BrokerRepo{pool: pool}
}

// Save inserts or updates a broker under optimistic locking.
func (r *BrokerRepo) Save(ctx context.Context, b model.Broker) error {
	query := `
		INSERT INTO brokers (id, nic, name, phone, address, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			phone      = EXCLUDED.phone,
			address    = EXCLUDED.address,
			version    = brokers.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE brokers.version = $6
	`
	tag, err := pg.Conn(ctx, r.pool).Exec(ctx, query,
		b.ID(), b.NIC().String(), b.Name(), b.Phone(), b.Address(),
		b.Version(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return storeErr("save broker", err)
	}
	if tag.RowsAffected() == 0 {
		return lockConflict("broker", b.ID(), b.Version())
	}
	return nil
}

// FindByID retrieves a broker by ID.
func (r *BrokerRepo) FindByID(ctx context.Context, id string) (model.Broker, error) {
	row := pg.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+brokerColumns+` FROM brokers WHERE id = $1`, id)
	b, err := scanBroker(row)
	if err != nil {
		return model.Broker{}, storeErr(fmt.Sprintf("find broker %s", id), err)
	}
	return b, nil
}

// FindByNIC retrieves a broker by normalised NIC.
func (r *BrokerRepo) FindByNIC(ctx context.Context, nic valueobject.NIC) (model.Broker, error) {
	row := pg.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+brokerColumns+` FROM brokers WHERE nic = $1`, nic.String())
	b, err := scanBroker(row)
	if err != nil {
		return model.Broker{}, storeErr(fmt.Sprintf("find broker by NIC %s", nic), err)
	}
	return b, nil
}

// List returns every broker ordered by name.
func (r *BrokerRepo) List(ctx context.Context) ([]model.Broker, error) {
	rows, err := pg.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+brokerColumns+` FROM brokers ORDER BY name, id`)
	if err != nil {
		return nil, storeErr("list brokers", err)
	}
	defer rows.Close()

	var out []model.Broker
	for rows.Next() {
		b, err := scanBroker(rows)
		if err != nil {
			return nil, storeErr("scan broker", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list brokers", err)
	}
	return out, nil
}

func scanBroker(s scannable) (model.Broker, error) {
	var (
		id, nicStr, name, phone, address string
		version                          int
		createdAt, updatedAt             time.Time
	)
	if err := s.Scan(&id, &nicStr, &name, &phone, &address, &version, &createdAt, &updatedAt); err != nil {
		return model.Broker{}, err
	}
	nic, err := valueobject.NewNIC(nicStr)
	if err != nil {
		return model.Broker{}, fmt.Errorf("stored broker %s: %w", id, err)
	}
	return model.ReconstructBroker(id, nic, name, phone, address, version, createdAt, updatedAt), nil
}
