package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/event"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// BrokerAllocation is the share of a broker payment booked to one investment.
type BrokerAllocation struct {
	InvestmentID string
	Amount       decimal.Decimal
}

// BrokerPayment is an immutable ledger entry for one lump commission payment.
type BrokerPayment struct {
	id           string
	brokerID     string
	amount       decimal.Decimal
	allocations  []BrokerAllocation
	note         string
	paidAt       time.Time
	domainEvents []event.DomainEvent
}

// NewBrokerPayment records a lump payment. The allocations must add up to
// amount exactly.
func NewBrokerPayment(
	brokerID string,
	amount decimal.Decimal,
	allocations []BrokerAllocation,
	note string,
	now time.Time,
) (BrokerPayment, error) {
	if brokerID == "" {
		return BrokerPayment{}, fmt.Errorf("%w: broker ID is required", valueobject.ErrValidation)
	}
	if !amount.IsPositive() {
		return BrokerPayment{}, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	if len(allocations) == 0 {
		return BrokerPayment{}, fmt.Errorf("%w: broker payment has no allocations", valueobject.ErrConsistency)
	}

	total := decimal.Zero
	lines := make([]event.BrokerAllocationLine, 0, len(allocations))
	for _, a := range allocations {
		if a.InvestmentID == "" || !a.Amount.IsPositive() {
			return BrokerPayment{}, fmt.Errorf("%w: invalid allocation %+v", valueobject.ErrValidation, a)
		}
		total = total.Add(a.Amount)
		lines = append(lines, event.BrokerAllocationLine{InvestmentID: a.InvestmentID, Amount: a.Amount})
	}
	if !total.Equal(amount) {
		return BrokerPayment{}, fmt.Errorf("%w: allocations total %s does not equal amount %s",
			valueobject.ErrConsistency, total, amount)
	}

	id := uuid.New().String()
	p := BrokerPayment{
		id:          id,
		brokerID:    brokerID,
		amount:      amount,
		allocations: copyAllocations(allocations),
		note:        note,
		paidAt:      now,
	}
	p.domainEvents = append(p.domainEvents, event.NewBrokerPaymentRecorded(id, brokerID, amount, lines, now))
	return p, nil
}

// ReconstructBrokerPayment rebuilds a ledger entry from persistence.
func ReconstructBrokerPayment(
	id, brokerID string,
	amount decimal.Decimal,
	allocations []BrokerAllocation,
	note string,
	paidAt time.Time,
) BrokerPayment {
	return BrokerPayment{
		id:          id,
		brokerID:    brokerID,
		amount:      amount,
		allocations: copyAllocations(allocations),
		note:        note,
		paidAt:      paidAt,
	}
}

func (p BrokerPayment) ID() string                        { return p.id }
func (p BrokerPayment) BrokerID() string                  { return p.brokerID }
func (p BrokerPayment) Amount() decimal.Decimal           { return p.amount }
func (p BrokerPayment) Note() string                      { return p.note }
func (p BrokerPayment) PaidAt() time.Time                 { return p.paidAt }
func (p BrokerPayment) DomainEvents() []event.DomainEvent { return p.domainEvents }

// Allocations returns a defensive copy of the allocation list.
func (p BrokerPayment) Allocations() []BrokerAllocation {
	return copyAllocations(p.allocations)
}

func copyAllocations(src []BrokerAllocation) []BrokerAllocation {
	if src == nil {
		return nil
	}
	dst := make([]BrokerAllocation, len(src))
	copy(dst, src)
	return dst
}
