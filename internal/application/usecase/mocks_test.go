package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/event"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// --- Mocks ---

type mockCustomerRepository struct {
	findByNICFunc func(ctx context.Context, nic valueobject.NIC) (model.Customer, error)
	listFunc      func(ctx context.Context) ([]model.Customer, error)
}

func (m *mockCustomerRepository) Save(_ context.Context, _ model.Customer) error { return nil }

func (m *mockCustomerRepository) FindByID(_ context.Context, id string) (model.Customer, error) {
	return model.Customer{}, fmt.Errorf("%w: customer %s", valueobject.ErrNotFound, id)
}

func (m *mockCustomerRepository) FindByNIC(ctx context.Context, nic valueobject.NIC) (model.Customer, error) {
	if m.findByNICFunc != nil {
		return m.findByNICFunc(ctx, nic)
	}
	return model.Customer{}, fmt.Errorf("%w: customer %s", valueobject.ErrNotFound, nic)
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockBrokerRepository struct {
	findByNICFunc func(ctx context.Context, nic valueobject.NIC) (model.Broker, error)
	listFunc      func(ctx context.Context) ([]model.Broker, error)
}

func (m *mockBrokerRepository) Save(_ context.Context, _ model.Broker) error { return nil }

func (m *mockBrokerRepository) FindByID(_ context.Context, id string) (model.Broker, error) {
	return model.Broker{}, fmt.Errorf("%w: broker %s", valueobject.ErrNotFound, id)
}

func (m *mockBrokerRepository) FindByNIC(ctx context.Context, nic valueobject.NIC) (model.Broker, error) {
	if m.findByNICFunc != nil {
		return m.findByNICFunc(ctx, nic)
	}
	return model.Broker{}, fmt.Errorf("%w: broker %s", valueobject.ErrNotFound, nic)
}

func (m *mockBrokerRepository) List(ctx context.Context) ([]model.Broker, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockAssetRepository struct {
	saveFunc     func(ctx context.Context, a model.Asset) error
	findByIDs    func(ctx context.Context, ids []string) ([]model.Asset, error)
	listFunc     func(ctx context.Context) ([]model.Asset, error)
	savedAssets  []model.Asset
	requestedIDs []string
}

func (m *mockAssetRepository) Save(ctx context.Context, a model.Asset) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, a); err != nil {
			return err
		}
	}
	m.savedAssets = append(m.savedAssets, a)
	return nil
}

func (m *mockAssetRepository) FindByID(_ context.Context, id string) (model.Asset, error) {
	return model.Asset{}, fmt.Errorf("%w: asset %s", valueobject.ErrNotFound, id)
}

func (m *mockAssetRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Asset, error) {
	m.requestedIDs = append(m.requestedIDs, ids...)
	if m.findByIDs != nil {
		return m.findByIDs(ctx, ids)
	}
	return nil, nil
}

func (m *mockAssetRepository) FindByCustomerID(_ context.Context, _ string) ([]model.Asset, error) {
	return nil, nil
}

func (m *mockAssetRepository) List(ctx context.Context) ([]model.Asset, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockInvestmentRepository struct {
	saveFunc           func(ctx context.Context, inv model.Investment) error
	findByIDFunc       func(ctx context.Context, id string) (model.Investment, error)
	findByCustomerFunc func(ctx context.Context, customerID string) ([]model.Investment, error)
	findByBrokerFunc   func(ctx context.Context, brokerID string) ([]model.Investment, error)
	listFunc           func(ctx context.Context) ([]model.Investment, error)
	savedInvestments   []model.Investment
}

func (m *mockInvestmentRepository) Save(ctx context.Context, inv model.Investment) error {
	if m.saveFunc != nil {
		if err := m.saveFunc(ctx, inv); err != nil {
			return err
		}
	}
	m.savedInvestments = append(m.savedInvestments, inv)
	return nil
}

func (m *mockInvestmentRepository) FindByID(ctx context.Context, id string) (model.Investment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Investment{}, fmt.Errorf("%w: investment %s", valueobject.ErrNotFound, id)
}

func (m *mockInvestmentRepository) FindByCustomerID(ctx context.Context, customerID string) ([]model.Investment, error) {
	if m.findByCustomerFunc != nil {
		return m.findByCustomerFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockInvestmentRepository) FindByBrokerID(ctx context.Context, brokerID string) ([]model.Investment, error) {
	if m.findByBrokerFunc != nil {
		return m.findByBrokerFunc(ctx, brokerID)
	}
	return nil, nil
}

func (m *mockInvestmentRepository) List(ctx context.Context) ([]model.Investment, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

type mockCustomerPaymentLedger struct {
	appendFunc      func(ctx context.Context, p model.CustomerPayment) error
	findByInvFunc   func(ctx context.Context, investmentID string) ([]model.CustomerPayment, error)
	listBetweenFunc func(ctx context.Context, from, to time.Time) ([]model.CustomerPayment, error)
	appended        []model.CustomerPayment
}

func (m *mockCustomerPaymentLedger) Append(ctx context.Context, p model.CustomerPayment) error {
	if m.appendFunc != nil {
		if err := m.appendFunc(ctx, p); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, p)
	return nil
}

func (m *mockCustomerPaymentLedger) FindByInvestmentID(ctx context.Context, investmentID string) ([]model.CustomerPayment, error) {
	if m.findByInvFunc != nil {
		return m.findByInvFunc(ctx, investmentID)
	}
	return nil, nil
}

func (m *mockCustomerPaymentLedger) FindByCustomerID(_ context.Context, _ string) ([]model.CustomerPayment, error) {
	return nil, nil
}

func (m *mockCustomerPaymentLedger) ListBetween(ctx context.Context, from, to time.Time) ([]model.CustomerPayment, error) {
	if m.listBetweenFunc != nil {
		return m.listBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

type mockBrokerPaymentLedger struct {
	appendFunc      func(ctx context.Context, p model.BrokerPayment) error
	findByBroker    func(ctx context.Context, brokerID string) ([]model.BrokerPayment, error)
	listBetweenFunc func(ctx context.Context, from, to time.Time) ([]model.BrokerPayment, error)
	appended        []model.BrokerPayment
}

func (m *mockBrokerPaymentLedger) Append(ctx context.Context, p model.BrokerPayment) error {
	if m.appendFunc != nil {
		if err := m.appendFunc(ctx, p); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, p)
	return nil
}

func (m *mockBrokerPaymentLedger) FindByBrokerID(ctx context.Context, brokerID string) ([]model.BrokerPayment, error) {
	if m.findByBroker != nil {
		return m.findByBroker(ctx, brokerID)
	}
	return nil, nil
}

func (m *mockBrokerPaymentLedger) ListBetween(ctx context.Context, from, to time.Time) ([]model.BrokerPayment, error) {
	if m.listBetweenFunc != nil {
		return m.listBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

// mockTxManager runs fn directly; it counts calls so tests can assert that
// nothing was written before validation finished.
type mockTxManager struct {
	calls int
}

func (m *mockTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	out := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		out = append(out, e.EventType())
	}
	return out
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }
