package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateInvestment    = "Investment"
	aggregateAsset         = "Asset"
	aggregateBrokerPayment = "BrokerPayment"
)

// ---------------------------------------------------------------------------
// Investment Events
// ---------------------------------------------------------------------------

// InvestmentOriginated is raised when a new investment is extended to a customer.
type InvestmentOriginated struct {
	StartDate time.Time `json:"start_date"`
	events.BaseEvent
	CustomerID     string          `json:"customer_id"`
	BrokerID       string          `json:"broker_id"`
	AssetIDs       []string        `json:"asset_ids"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

func NewInvestmentOriginated(
	investmentID, customerID, brokerID string, assetIDs []string,
	principal, interestRate, commissionRate decimal.Decimal,
	startDate, now time.Time,
) InvestmentOriginated {
	return InvestmentOriginated{
		BaseEvent:      events.NewBaseEvent("holdings.investment.originated", investmentID, aggregateInvestment, now),
		CustomerID:     customerID,
		BrokerID:       brokerID,
		AssetIDs:       assetIDs,
		Principal:      principal,
		InterestRate:   interestRate,
		CommissionRate: commissionRate,
		StartDate:      startDate,
	}
}

// CustomerPaymentApplied is raised when a customer payment is split onto an investment.
type CustomerPaymentApplied struct {
	events.BaseEvent
	CustomerID         string          `json:"customer_id"`
	Amount             decimal.Decimal `json:"amount"`
	InterestPart       decimal.Decimal `json:"interest_part"`
	PrincipalPart      decimal.Decimal `json:"principal_part"`
	InterestPaidTotal  decimal.Decimal `json:"interest_paid_total"`
	PrincipalPaidTotal decimal.Decimal `json:"principal_paid_total"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
}

func NewCustomerPaymentApplied(
	investmentID, customerID string,
	amount, interestPart, principalPart decimal.Decimal,
	interestPaidTotal, principalPaidTotal, remaining decimal.Decimal,
	now time.Time,
) CustomerPaymentApplied {
	return CustomerPaymentApplied{
		BaseEvent:          events.NewBaseEvent("holdings.investment.customer_payment_applied", investmentID, aggregateInvestment, now),
		CustomerID:         customerID,
		Amount:             amount,
		InterestPart:       interestPart,
		PrincipalPart:      principalPart,
		InterestPaidTotal:  interestPaidTotal,
		PrincipalPaidTotal: principalPaidTotal,
		RemainingPrincipal: remaining,
	}
}

// InvestmentSettled is raised when an investment owes neither principal nor arrears.
type InvestmentSettled struct {
	events.BaseEvent
	CustomerID string   `json:"customer_id"`
	AssetIDs   []string `json:"asset_ids"`
}

func NewInvestmentSettled(investmentID, customerID string, assetIDs []string, now time.Time) InvestmentSettled {
	return InvestmentSettled{
		BaseEvent:  events.NewBaseEvent("holdings.investment.settled", investmentID, aggregateInvestment, now),
		CustomerID: customerID,
		AssetIDs:   assetIDs,
	}
}

// CommissionPaid is raised when part of a broker payment lands on an investment.
type CommissionPaid struct {
	events.BaseEvent
	BrokerID  string          `json:"broker_id"`
	Amount    decimal.Decimal `json:"amount"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

func NewCommissionPaid(investmentID, brokerID string, amount, totalPaid decimal.Decimal, now time.Time) CommissionPaid {
	return CommissionPaid{
		BaseEvent: events.NewBaseEvent("holdings.investment.commission_paid", investmentID, aggregateInvestment, now),
		BrokerID:  brokerID,
		Amount:    amount,
		TotalPaid: totalPaid,
	}
}

// ---------------------------------------------------------------------------
// Asset Events
// ---------------------------------------------------------------------------

// AssetReleased is raised when collateral is handed back after settlement.
type AssetReleased struct {
	events.BaseEvent
	InvestmentID string `json:"investment_id"`
	Note         string `json:"note"`
}

func NewAssetReleased(assetID, investmentID, note string, now time.Time) AssetReleased {
	return AssetReleased{
		BaseEvent:    events.NewBaseEvent("holdings.asset.released", assetID, aggregateAsset, now),
		InvestmentID: investmentID,
		Note:         note,
	}
}

// ---------------------------------------------------------------------------
// Ledger Events
// ---------------------------------------------------------------------------

// CustomerPaymentRecorded is raised when a customer payment ledger row is written.
type CustomerPaymentRecorded struct {
	events.BaseEvent
	PaymentID     string          `json:"payment_id"`
	CustomerID    string          `json:"customer_id"`
	BrokerID      string          `json:"broker_id"`
	Amount        decimal.Decimal `json:"amount"`
	ExcessAmount  decimal.Decimal `json:"excess_amount"`
	Mode          string          `json:"mode"`
	Method        string          `json:"method"`
	PrincipalPaid bool            `json:"principal_fully_paid"`
}

func NewCustomerPaymentRecorded(
	paymentID, investmentID, customerID, brokerID string,
	amount, excess decimal.Decimal,
	mode, method string, principalFullyPaid bool,
	now time.Time,
) CustomerPaymentRecorded {
	return CustomerPaymentRecorded{
		BaseEvent:     events.NewBaseEvent("holdings.customer_payment.recorded", investmentID, aggregateInvestment, now),
		PaymentID:     paymentID,
		CustomerID:    customerID,
		BrokerID:      brokerID,
		Amount:        amount,
		ExcessAmount:  excess,
		Mode:          mode,
		Method:        method,
		PrincipalPaid: principalFullyPaid,
	}
}

// BrokerAllocationLine is one investment's share of a broker payment.
type BrokerAllocationLine struct {
	InvestmentID string          `json:"investment_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// BrokerPaymentRecorded is raised when a lump commission payment is written.
type BrokerPaymentRecorded struct {
	events.BaseEvent
	BrokerID    string                 `json:"broker_id"`
	Amount      decimal.Decimal        `json:"amount"`
	Allocations []BrokerAllocationLine `json:"allocations"`
}

func NewBrokerPaymentRecorded(
	paymentID, brokerID string,
	amount decimal.Decimal, allocations []BrokerAllocationLine,
	now time.Time,
) BrokerPaymentRecorded {
	return BrokerPaymentRecorded{
		BaseEvent:   events.NewBaseEvent("holdings.broker_payment.recorded", paymentID, aggregateBrokerPayment, now),
		BrokerID:    brokerID,
		Amount:      amount,
		Allocations: allocations,
	}
}
