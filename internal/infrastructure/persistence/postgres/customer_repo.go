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

const customerColumns = `id::text, nic, name, phone, address, version, created_at, updated_at`

// CustomerRepo implements port.CustomerRepository.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepo creates a new PostgreSQL-backed customer repository.
func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Save inserts or updates a customer under optimistic locking.
func (r *CustomerRepo) Save(ctx context.Context, c model.Customer) error {
	query := `
		INSERT INTO customers (id, nic, name, phone, address, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			phone      = EXCLUDED.phone,
			address    = EXCLUDED.address,
			version    = customers.version + 1,
			updated_at = EXCLUDED.updated_at
		WHERE customers.version = $6
	`
	tag, err := pg.Conn(ctx, r.pool).Exec(ctx, query,
		c.ID(), c.NIC().String(), c.Name(), c.Phone(), c.Address(),
		c.Version(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return storeErr("save customer", err)
	}
	if tag.RowsAffected() == 0 {
		return lockConflict("customer", c.ID(), c.Version())
	}
	return nil
}

// FindByID retrieves a customer by ID.
func (r *CustomerRepo) FindByID(ctx context.Context, id string) (model.Customer, error) {
	row := pg.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		return model.Customer{}, storeErr(fmt.Sprintf("find customer %s", id), err)
	}
	return c, nil
}

// FindByNIC retrieves a customer by normalised NIC.
func (r *CustomerRepo) FindByNIC(ctx context.Context, nic valueobject.NIC) (model.Customer, error) {
	row := pg.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE nic = $1`, nic.String())
	c, err := scanCustomer(row)
	if err != nil {
		return model.Customer{}, storeErr(fmt.Sprintf("find customer by NIC %s", nic), err)
	}
	return c, nil
}

// List returns every customer ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := pg.Conn(ctx, r.pool).Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY name, id`)
	if err != nil {
		return nil, storeErr("list customers", err)
	}
	defer rows.Close()

	var out []model.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, storeErr("scan customer", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list customers", err)
	}
	return out, nil
}

func scanCustomer(s scannable) (model.Customer, error) {
	var (
		id, nicStr, name, phone, address string
		version                          int
		createdAt, updatedAt             time.Time
	)
	if err := s.Scan(&id, &nicStr, &name, &phone, &address, &version, &createdAt, &updatedAt); err != nil {
		return model.Customer{}, err
	}
	nic, err := valueobject.NewNIC(nicStr)
	if err != nil {
		return model.Customer{}, fmt.Errorf("stored customer %s: %w", id, err)
	}
	return model.ReconstructCustomer(id, nic, name, phone, address, version, createdAt, updatedAt), nil
}
