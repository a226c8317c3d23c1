package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/event"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Investment aggregate root
// ---------------------------------------------------------------------------

// Investment is money lent to one customer, secured by one or more assets and
// introduced by one broker. It is immutable; mutations return a new copy.
type Investment struct {
	id             string
	customerID     string
	brokerID       string
	assetIDs       []string
	principal      decimal.Decimal
	interestRate   decimal.Decimal
	commissionRate decimal.Decimal
	startDate      time.Time

	interestPaid      decimal.Decimal
	principalPaid     decimal.Decimal
	totalPaid         decimal.Decimal
	remaining         valueobject.RemainingPrincipal
	lastPaymentAmount decimal.Decimal
	lastPaymentAt     time.Time

	brokerPaid              decimal.Decimal
	lastBrokerPaymentAmount decimal.Decimal
	lastBrokerPaymentAt     time.Time

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// InvestmentSnapshot carries every stored field of an investment. It is the
// input of ReconstructInvestment and is used by repositories and tests.
type InvestmentSnapshot struct {
	ID             string
	CustomerID     string
	BrokerID       string
	AssetIDs       []string
	Principal      decimal.Decimal
	InterestRate   decimal.Decimal
	CommissionRate decimal.Decimal
	StartDate      time.Time

	InterestPaid      decimal.Decimal
	PrincipalPaid     decimal.Decimal
	TotalPaid         decimal.Decimal
	Remaining         valueobject.RemainingPrincipal
	LastPaymentAmount decimal.Decimal
	LastPaymentAt     time.Time

	BrokerPaid              decimal.Decimal
	LastBrokerPaymentAmount decimal.Decimal
	LastBrokerPaymentAt     time.Time

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewInvestment originates an investment. Interest accrues from startDate;
// a zero startDate means accrual starts now.
func NewInvestment(
	customerID, brokerID string,
	assetIDs []string,
	principal, interestRate, commissionRate decimal.Decimal,
	startDate, now time.Time,
) (Investment, error) {
	if customerID == "" {
		return Investment{}, fmt.Errorf("%w: customer ID is required", valueobject.ErrValidation)
	}
	if brokerID == "" {
		return Investment{}, fmt.Errorf("%w: broker ID is required", valueobject.ErrValidation)
	}
	if !principal.IsPositive() {
		return Investment{}, fmt.Errorf("%w: principal must be positive", valueobject.ErrValidation)
	}
	if interestRate.IsNegative() {
		return Investment{}, fmt.Errorf("%w: interest rate must not be negative", valueobject.ErrValidation)
	}
	if commissionRate.IsNegative() {
		return Investment{}, fmt.Errorf("%w: commission rate must not be negative", valueobject.ErrValidation)
	}
	if len(assetIDs) == 0 {
		return Investment{}, fmt.Errorf("%w: investment must be secured by at least one asset", valueobject.ErrConsistency)
	}
	if startDate.IsZero() {
		startDate = now
	}

	id := uuid.New().String()
	assets := copyStrings(assetIDs)

	inv := Investment{
		id:             id,
		customerID:     customerID,
		brokerID:       brokerID,
		assetIDs:       assets,
		principal:      principal,
		interestRate:   interestRate,
		commissionRate: commissionRate,
		startDate:      startDate,
		remaining:      valueobject.DerivedRemaining(),
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}

	inv.domainEvents = append(inv.domainEvents, event.NewInvestmentOriginated(
		id, customerID, brokerID, copyStrings(assets),
		principal, interestRate, commissionRate, startDate, now,
	))

	return inv, nil
}

// ReconstructInvestment rebuilds an Investment aggregate from persistence.
func ReconstructInvestment(s InvestmentSnapshot) Investment {
	return Investment{
		id:                      s.ID,
		customerID:              s.CustomerID,
		brokerID:                s.BrokerID,
		assetIDs:                copyStrings(s.AssetIDs),
		principal:               s.Principal,
		interestRate:            s.InterestRate,
		commissionRate:          s.CommissionRate,
		startDate:               s.StartDate,
		interestPaid:            s.InterestPaid,
		principalPaid:           s.PrincipalPaid,
		totalPaid:               s.TotalPaid,
		remaining:               s.Remaining,
		lastPaymentAmount:       s.LastPaymentAmount,
		lastPaymentAt:           s.LastPaymentAt,
		brokerPaid:              s.BrokerPaid,
		lastBrokerPaymentAmount: s.LastBrokerPaymentAmount,
		lastBrokerPaymentAt:     s.LastBrokerPaymentAt,
		version:                 s.Version,
		createdAt:               s.CreatedAt,
		updatedAt:               s.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// ApplyCustomerPayment books an already split customer payment. amount is
// the full sum handed over; any part not allocated to interest or principal
// is excess and only counts towards the total paid. principalPendingBefore is
// the pending principal the split was computed against.
func (i Investment) ApplyCustomerPayment(
	amount, interestPart, principalPart, principalPendingBefore decimal.Decimal,
	now time.Time,
) (Investment, error) {
	if !amount.IsPositive() {
		return i, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	if interestPart.IsNegative() || principalPart.IsNegative() {
		return i, fmt.Errorf("%w: allocated parts must not be negative", valueobject.ErrValidation)
	}
	if interestPart.Add(principalPart).GreaterThan(amount) {
		return i, fmt.Errorf("%w: allocated parts exceed payment amount", valueobject.ErrConsistency)
	}

	remaining := principalPendingBefore.Sub(principalPart)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	next := i
	next.assetIDs = copyStrings(i.assetIDs)
	next.interestPaid = i.interestPaid.Add(interestPart)
	next.principalPaid = i.principalPaid.Add(principalPart)
	next.totalPaid = i.totalPaid.Add(amount)
	next.remaining = valueobject.ExplicitRemaining(remaining)
	next.lastPaymentAmount = amount
	next.lastPaymentAt = now
	next.updatedAt = now
	next.domainEvents = copyEvents(i.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCustomerPaymentApplied(
		i.id, i.customerID,
		amount, interestPart, principalPart,
		next.interestPaid, next.principalPaid, remaining,
		now,
	))

	return next, nil
}

// MarkSettled records that the investment owes nothing further.
func (i Investment) MarkSettled(now time.Time) Investment {
	next := i
	next.updatedAt = now
	next.domainEvents = copyEvents(i.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewInvestmentSettled(
		i.id, i.customerID, copyStrings(i.assetIDs), now,
	))
	return next
}

// ApplyBrokerPayment adds amount to the commission already paid out.
func (i Investment) ApplyBrokerPayment(amount decimal.Decimal, now time.Time) (Investment, error) {
	if !amount.IsPositive() {
		return i, fmt.Errorf("%w: commission amount must be positive", valueobject.ErrValidation)
	}

	next := i
	next.assetIDs = copyStrings(i.assetIDs)
	next.brokerPaid = i.brokerPaid.Add(amount)
	next.lastBrokerPaymentAmount = amount
	next.lastBrokerPaymentAt = now
	next.updatedAt = now
	next.domainEvents = copyEvents(i.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCommissionPaid(
		i.id, i.brokerID, amount, next.brokerPaid, now,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// PrincipalPending is the principal still owed, never negative.
func (i Investment) PrincipalPending() decimal.Decimal {
	return i.remaining.Resolve(i.principal, i.principalPaid)
}

// BelongsTo reports whether the investment was made to customerID through brokerID.
func (i Investment) BelongsTo(customerID, brokerID string) bool {
	return i.customerID == customerID && i.brokerID == brokerID
}

// HasAssets reports whether any collateral backs the investment.
func (i Investment) HasAssets() bool { return len(i.assetIDs) > 0 }

// EverPaid reports whether any customer payment has been booked.
func (i Investment) EverPaid() bool { return !i.lastPaymentAt.IsZero() }

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (i Investment) ID() string                                { return i.id }
func (i Investment) CustomerID() string                        { return i.customerID }
func (i Investment) BrokerID() string                          { return i.brokerID }
func (i Investment) Principal() decimal.Decimal                { return i.principal }
func (i Investment) InterestRate() decimal.Decimal             { return i.interestRate }
func (i Investment) CommissionRate() decimal.Decimal           { return i.commissionRate }
func (i Investment) StartDate() time.Time                      { return i.startDate }
func (i Investment) InterestPaid() decimal.Decimal             { return i.interestPaid }
func (i Investment) PrincipalPaid() decimal.Decimal            { return i.principalPaid }
func (i Investment) TotalPaid() decimal.Decimal                { return i.totalPaid }
func (i Investment) Remaining() valueobject.RemainingPrincipal { return i.remaining }
func (i Investment) LastPaymentAmount() decimal.Decimal        { return i.lastPaymentAmount }
func (i Investment) LastPaymentAt() time.Time                  { return i.lastPaymentAt }
func (i Investment) BrokerPaid() decimal.Decimal               { return i.brokerPaid }
func (i Investment) LastBrokerPaymentAmount() decimal.Decimal  { return i.lastBrokerPaymentAmount }
func (i Investment) LastBrokerPaymentAt() time.Time            { return i.lastBrokerPaymentAt }
func (i Investment) Version() int                              { return i.version }
func (i Investment) CreatedAt() time.Time                      { return i.createdAt }
func (i Investment) UpdatedAt() time.Time                      { return i.updatedAt }
func (i Investment) DomainEvents() []event.DomainEvent         { return i.domainEvents }

// AssetIDs returns a defensive copy of the backing asset IDs.
func (i Investment) AssetIDs() []string {
	return copyStrings(i.assetIDs)
}

// ClearEvents returns a copy with an empty event list.
func (i Investment) ClearEvents() Investment {
	next := i
	next.domainEvents = nil
	return next
}
