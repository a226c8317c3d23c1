package port

import (
	"context"
	"time"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/event"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------
//
// Find methods return an error wrapping valueobject.ErrNotFound when nothing
// matches; store failures wrap valueobject.ErrPersistence.

// CustomerRepository persists and retrieves customers.
type CustomerRepository interface {
	Save(ctx context.Context, c model.Customer) error
	FindByID(ctx context.Context, id string) (model.Customer, error)
	FindByNIC(ctx context.Context, nic valueobject.NIC) (model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
}

// BrokerRepository persists and retrieves brokers.
type BrokerRepository interface {
	Save(ctx context.Context, b model.Broker) error
	FindByID(ctx context.Context, id string) (model.Broker, error)
	FindByNIC(ctx context.Context, nic valueobject.NIC) (model.Broker, error)
	List(ctx context.Context) ([]model.Broker, error)
}

// AssetRepository persists and retrieves collateral.
type AssetRepository interface {
	Save(ctx context.Context, a model.Asset) error
	FindByID(ctx context.Context, id string) (model.Asset, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Asset, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.Asset, error)
	List(ctx context.Context) ([]model.Asset, error)
}

// InvestmentRepository persists and retrieves investments. List methods
// return investments oldest-first by creation time.
type InvestmentRepository interface {
	Save(ctx context.Context, inv model.Investment) error
	FindByID(ctx context.Context, id string) (model.Investment, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.Investment, error)
	FindByBrokerID(ctx context.Context, brokerID string) ([]model.Investment, error)
	List(ctx context.Context) ([]model.Investment, error)
}

// ---------------------------------------------------------------------------
// Ledger ports (append-only)
// ---------------------------------------------------------------------------

// CustomerPaymentLedger appends and reads customer payment entries.
type CustomerPaymentLedger interface {
	Append(ctx context.Context, p model.CustomerPayment) error
	FindByInvestmentID(ctx context.Context, investmentID string) ([]model.CustomerPayment, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.CustomerPayment, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.CustomerPayment, error)
}

// BrokerPaymentLedger appends and reads broker payment entries.
type BrokerPaymentLedger interface {
	Append(ctx context.Context, p model.BrokerPayment) error
	FindByBrokerID(ctx context.Context, brokerID string) ([]model.BrokerPayment, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]model.BrokerPayment, error)
}

// ---------------------------------------------------------------------------
// Unit of work
// ---------------------------------------------------------------------------

// TransactionManager runs fn so that every repository and ledger call made
// with the ctx it receives commits or rolls back together.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Clock
// ---------------------------------------------------------------------------

// Clock supplies the reference instant for accrual math.
type Clock interface {
	Now() time.Time
}
