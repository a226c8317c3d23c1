package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/event"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// CustomerPayment is an immutable ledger entry for one customer payment
// against one investment. It snapshots the split and the investment's
// cumulative totals right after the payment.
type CustomerPayment struct {
	id           string
	investmentID string
	customerID   string
	brokerID     string
	amount       decimal.Decimal
	interestPart decimal.Decimal
	principal    decimal.Decimal
	excess       decimal.Decimal
	mode         valueobject.AllocationMode
	method       valueobject.PaymentMethod

	interestPaidTotal  decimal.Decimal
	principalPaidTotal decimal.Decimal
	totalPaid          decimal.Decimal
	remainingPrincipal decimal.Decimal
	principalFullyPaid bool

	note         string
	paidAt       time.Time
	domainEvents []event.DomainEvent
}

// CustomerPaymentSnapshot carries every stored field of a ledger entry.
type CustomerPaymentSnapshot struct {
	ID                 string
	InvestmentID       string
	CustomerID         string
	BrokerID           string
	Amount             decimal.Decimal
	InterestPart       decimal.Decimal
	PrincipalPart      decimal.Decimal
	ExcessAmount       decimal.Decimal
	Mode               valueobject.AllocationMode
	Method             valueobject.PaymentMethod
	InterestPaidTotal  decimal.Decimal
	PrincipalPaidTotal decimal.Decimal
	TotalPaid          decimal.Decimal
	RemainingPrincipal decimal.Decimal
	PrincipalFullyPaid bool
	Note               string
	PaidAt             time.Time
}

// NewCustomerPayment writes the ledger entry for a payment already applied to
// after. The three parts must add up to amount exactly.
func NewCustomerPayment(
	after Investment,
	amount, interestPart, principalPart, excess decimal.Decimal,
	mode valueobject.AllocationMode,
	method valueobject.PaymentMethod,
	note string,
	now time.Time,
) (CustomerPayment, error) {
	if !amount.IsPositive() {
		return CustomerPayment{}, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	if mode.IsZero() || method.IsZero() {
		return CustomerPayment{}, fmt.Errorf("%w: allocation mode and payment method are required", valueobject.ErrValidation)
	}
	if !interestPart.Add(principalPart).Add(excess).Equal(amount) {
		return CustomerPayment{}, fmt.Errorf("%w: payment split %s+%s+%s does not equal amount %s",
			valueobject.ErrConsistency, interestPart, principalPart, excess, amount)
	}

	remaining := after.PrincipalPending()
	p := CustomerPayment{
		id:                 uuid.New().String(),
		investmentID:       after.ID(),
		customerID:         after.CustomerID(),
		brokerID:           after.BrokerID(),
		amount:             amount,
		interestPart:       interestPart,
		principal:          principalPart,
		excess:             excess,
		mode:               mode,
		method:             method,
		interestPaidTotal:  after.InterestPaid(),
		principalPaidTotal: after.PrincipalPaid(),
		totalPaid:          after.TotalPaid(),
		remainingPrincipal: remaining,
		principalFullyPaid: !remaining.IsPositive(),
		note:               note,
		paidAt:             now,
	}
	p.domainEvents = append(p.domainEvents, event.NewCustomerPaymentRecorded(
		p.id, p.investmentID, p.customerID, p.brokerID,
		amount, excess, mode.String(), method.String(), p.principalFullyPaid,
		now,
	))
	return p, nil
}

// ReconstructCustomerPayment rebuilds a ledger entry from persistence.
func ReconstructCustomerPayment(s CustomerPaymentSnapshot) CustomerPayment {
	return CustomerPayment{
		id:                 s.ID,
		investmentID:       s.InvestmentID,
		customerID:         s.CustomerID,
		brokerID:           s.BrokerID,
		amount:             s.Amount,
		interestPart:       s.InterestPart,
		principal:          s.PrincipalPart,
		excess:             s.ExcessAmount,
		mode:               s.Mode,
		method:             s.Method,
		interestPaidTotal:  s.InterestPaidTotal,
		principalPaidTotal: s.PrincipalPaidTotal,
		totalPaid:          s.TotalPaid,
		remainingPrincipal: s.RemainingPrincipal,
		principalFullyPaid: s.PrincipalFullyPaid,
		note:               s.Note,
		paidAt:             s.PaidAt,
	}
}

func (p CustomerPayment) ID() string                         { return p.id }
func (p CustomerPayment) InvestmentID() string               { return p.investmentID }
func (p CustomerPayment) CustomerID() string                 { return p.customerID }
func (p CustomerPayment) BrokerID() string                   { return p.brokerID }
func (p CustomerPayment) Amount() decimal.Decimal            { return p.amount }
func (p CustomerPayment) InterestPart() decimal.Decimal      { return p.interestPart }
func (p CustomerPayment) PrincipalPart() decimal.Decimal     { return p.principal }
func (p CustomerPayment) ExcessAmount() decimal.Decimal      { return p.excess }
func (p CustomerPayment) Mode() valueobject.AllocationMode   { return p.mode }
func (p CustomerPayment) Method() valueobject.PaymentMethod  { return p.method }
func (p CustomerPayment) InterestPaidTotal() decimal.Decimal { return p.interestPaidTotal }
func (p CustomerPayment) PrincipalPaidTotal() decimal.Decimal { return p.principalPaidTotal }
func (p CustomerPayment) TotalPaid() decimal.Decimal          { return p.totalPaid }
func (p CustomerPayment) RemainingPrincipal() decimal.Decimal { return p.remainingPrincipal }
func (p CustomerPayment) PrincipalFullyPaid() bool            { return p.principalFullyPaid }
func (p CustomerPayment) Note() string                        { return p.note }
func (p CustomerPayment) PaidAt() time.Time                   { return p.paidAt }
func (p CustomerPayment) DomainEvents() []event.DomainEvent   { return p.domainEvents }
