package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Customer
// ---------------------------------------------------------------------------

// Customer is a borrower, keyed for humans by NIC.
type Customer struct {
	id        string
	nic       valueobject.NIC
	name      string
	phone     string
	address   string
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewCustomer registers a customer.
func NewCustomer(nic valueobject.NIC, name, phone, address string, now time.Time) (Customer, error) {
	if nic.IsZero() {
		return Customer{}, fmt.Errorf("%w: customer NIC is required", valueobject.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return Customer{}, fmt.Errorf("%w: customer name is required", valueobject.ErrValidation)
	}
	return Customer{
		id:        uuid.New().String(),
		nic:       nic,
		name:      strings.TrimSpace(name),
		phone:     phone,
		address:   address,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructCustomer rebuilds a Customer from persistence.
func ReconstructCustomer(
	id string, nic valueobject.NIC, name, phone, address string,
	version int, createdAt, updatedAt time.Time,
) Customer {
	return Customer{
		id:        id,
		nic:       nic,
		name:      name,
		phone:     phone,
		address:   address,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (c Customer) ID() string           { return c.id }
func (c Customer) NIC() valueobject.NIC { return c.nic }
func (c Customer) Name() string         { return c.name }
func (c Customer) Phone() string        { return c.phone }
func (c Customer) Address() string      { return c.address }
func (c Customer) Version() int         { return c.version }
func (c Customer) CreatedAt() time.Time { return c.createdAt }
func (c Customer) UpdatedAt() time.Time { return c.updatedAt }

// ---------------------------------------------------------------------------
// Broker
// ---------------------------------------------------------------------------

// Broker introduces customers and earns commission on the interest they pay.
type Broker struct {
	id        string
	nic       valueobject.NIC
	name      string
	phone     string
	address   string
	version   int
	createdAt time.Time
	updatedAt time.Time
}

// NewBroker registers a broker.
func NewBroker(nic valueobject.NIC, name, phone, address string, now time.Time) (Broker, error) {
	if nic.IsZero() {
		return Broker{}, fmt.Errorf("%w: broker NIC is required", valueobject.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return Broker{}, fmt.Errorf("%w: broker name is required", valueobject.ErrValidation)
	}
	return Broker{
		id:        uuid.New().String(),
		nic:       nic,
		name:      strings.TrimSpace(name),
		phone:     phone,
		address:   address,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBroker rebuilds a Broker from persistence.
func ReconstructBroker(
	id string, nic valueobject.NIC, name, phone, address string,
	version int, createdAt, updatedAt time.Time,
) Broker {
	return Broker{
		id:        id,
		nic:       nic,
		name:      name,
		phone:     phone,
		address:   address,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b Broker) ID() string           { return b.id }
func (b Broker) NIC() valueobject.NIC { return b.nic }
func (b Broker) Name() string         { return b.name }
func (b Broker) Phone() string        { return b.phone }
func (b Broker) Address() string      { return b.address }
func (b Broker) Version() int         { return b.version }
func (b Broker) CreatedAt() time.Time { return b.createdAt }
func (b Broker) UpdatedAt() time.Time { return b.updatedAt }
