package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// OriginateInvestmentRequest carries the data needed to lend to a customer.
type OriginateInvestmentRequest struct {
	CustomerNIC    string          `json:"customer_nic"`
	BrokerNIC      string          `json:"broker_nic"`
	AssetIDs       []string        `json:"asset_ids"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	// StartDate defaults to now when zero.
	StartDate time.Time `json:"start_date,omitempty"`
}

// RecordCustomerPaymentRequest carries one payment handed over by a customer.
type RecordCustomerPaymentRequest struct {
	InvestmentID string          `json:"investment_id"`
	CustomerNIC  string          `json:"customer_nic"`
	BrokerNIC    string          `json:"broker_nic"`
	Amount       decimal.Decimal `json:"amount"`
	Mode         string          `json:"mode"`
	Method       string          `json:"method"`
	Note         string          `json:"note,omitempty"`
}

// PayBrokerRequest carries a lump commission payment to one broker.
type PayBrokerRequest struct {
	BrokerNIC string          `json:"broker_nic"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
}

// GetInvestmentRequest identifies one investment.
type GetInvestmentRequest struct {
	InvestmentID string `json:"investment_id"`
}

// GetCustomerRequest identifies one customer by NIC.
type GetCustomerRequest struct {
	CustomerNIC string `json:"customer_nic"`
}

// GetBrokerRequest identifies one broker by NIC.
type GetBrokerRequest struct {
	BrokerNIC string `json:"broker_nic"`
}

// FlowReportRequest asks for a flow table across the whole book.
type FlowReportRequest struct{}

// DashboardRequest asks for a bucketed time series over [From, To).
type DashboardRequest struct {
	Bucket string    `json:"bucket"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InvestmentResponse is the external representation of an investment.
type InvestmentResponse struct {
	ID                  string          `json:"id"`
	CustomerID          string          `json:"customer_id"`
	BrokerID            string          `json:"broker_id"`
	AssetIDs            []string        `json:"asset_ids"`
	Principal           decimal.Decimal `json:"principal"`
	InterestRate        decimal.Decimal `json:"interest_rate"`
	CommissionRate      decimal.Decimal `json:"commission_rate"`
	StartDate           time.Time       `json:"start_date"`
	InterestPaid        decimal.Decimal `json:"interest_paid"`
	PrincipalPaid       decimal.Decimal `json:"principal_paid"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	PrincipalPending    decimal.Decimal `json:"principal_pending"`
	BrokerPaid          decimal.Decimal `json:"broker_paid"`
	LastPaymentAmount   decimal.Decimal `json:"last_payment_amount"`
	LastPaymentAt       *time.Time      `json:"last_payment_at,omitempty"`
	LastBrokerPaymentAt *time.Time      `json:"last_broker_payment_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// AccrualResponse is the accrual state of one investment.
type AccrualResponse struct {
	InvestmentID     string          `json:"investment_id"`
	MonthlyInterest  decimal.Decimal `json:"monthly_interest"`
	DueMonths        int             `json:"due_months"`
	PastDueInterest  decimal.Decimal `json:"past_due_interest"`
	ArrearsInterest  decimal.Decimal `json:"arrears_interest"`
	ArrearsMonths    int             `json:"arrears_months"`
	PrincipalPending decimal.Decimal `json:"principal_pending"`
	Status           string          `json:"status"`
	AsOf             time.Time       `json:"as_of"`
}

// CustomerPaymentResponse is the outcome of a recorded customer payment.
type CustomerPaymentResponse struct {
	PaymentID           string          `json:"payment_id"`
	InvestmentID        string          `json:"investment_id"`
	Amount              decimal.Decimal `json:"amount"`
	InterestOutstanding decimal.Decimal `json:"interest_outstanding"`
	InterestPart        decimal.Decimal `json:"interest_part"`
	PrincipalPart       decimal.Decimal `json:"principal_part"`
	ExcessAmount        decimal.Decimal `json:"excess_amount"`
	InterestPaidTotal   decimal.Decimal `json:"interest_paid_total"`
	PrincipalPaidTotal  decimal.Decimal `json:"principal_paid_total"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	PrincipalPending    decimal.Decimal `json:"principal_pending"`
	ArrearsAfter        decimal.Decimal `json:"arrears_after"`
	Settled             bool            `json:"settled"`
	ReleasedAssetIDs    []string        `json:"released_asset_ids,omitempty"`
	PaidAt              time.Time       `json:"paid_at"`
}

// BrokerAllocationResponse is one line of a broker payment.
type BrokerAllocationResponse struct {
	InvestmentID string          `json:"investment_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// BrokerPaymentResponse is the outcome of a lump broker payment.
type BrokerPaymentResponse struct {
	PaymentID    string                     `json:"payment_id"`
	BrokerID     string                     `json:"broker_id"`
	Amount       decimal.Decimal            `json:"amount"`
	PendingTotal decimal.Decimal            `json:"pending_before"`
	PendingAfter decimal.Decimal            `json:"pending_after"`
	Allocations  []BrokerAllocationResponse `json:"allocations"`
	PaidAt       time.Time                  `json:"paid_at"`
}

// CommissionPositionResponse is a broker's commission on one investment.
type CommissionPositionResponse struct {
	InvestmentID    string          `json:"investment_id"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	Paid            decimal.Decimal `json:"paid"`
	Pending         decimal.Decimal `json:"pending"`
}

// BrokerCommissionResponse summarises a broker's commission book.
type BrokerCommissionResponse struct {
	BrokerID        string                       `json:"broker_id"`
	BrokerNIC       string                       `json:"broker_nic"`
	Name            string                       `json:"name"`
	TotalCommission decimal.Decimal              `json:"total_commission"`
	Paid            decimal.Decimal              `json:"paid"`
	Pending         decimal.Decimal              `json:"pending"`
	Positions       []CommissionPositionResponse `json:"positions"`
}

// CustomerFlowRowResponse is one customer's rolled-up position.
type CustomerFlowRowResponse struct {
	CustomerID       string          `json:"customer_id"`
	CustomerNIC      string          `json:"customer_nic"`
	Name             string          `json:"name"`
	Investments      int             `json:"investments"`
	TotalPrincipal   decimal.Decimal `json:"total_principal"`
	PrincipalPending decimal.Decimal `json:"principal_pending"`
	MonthlyInterest  decimal.Decimal `json:"monthly_interest"`
	ArrearsInterest  decimal.Decimal `json:"arrears_interest"`
	ArrearsMonths    int             `json:"arrears_months"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	Status           string          `json:"status"`
}

// CustomerPositionResponse is one customer's position with per-investment detail.
type CustomerPositionResponse struct {
	CustomerFlowRowResponse
	Accruals []AccrualResponse `json:"accruals"`
}

// CustomerFlowResponse is the customer flow table.
type CustomerFlowResponse struct {
	Rows []CustomerFlowRowResponse `json:"rows"`
	AsOf time.Time                 `json:"as_of"`
}

// BrokerFlowRowResponse is one broker's commission position.
type BrokerFlowRowResponse struct {
	BrokerID          string          `json:"broker_id"`
	BrokerNIC         string          `json:"broker_nic"`
	Name              string          `json:"name"`
	Investments       int             `json:"investments"`
	InterestCollected decimal.Decimal `json:"interest_collected"`
	TotalCommission   decimal.Decimal `json:"total_commission"`
	Paid              decimal.Decimal `json:"paid"`
	Pending           decimal.Decimal `json:"pending"`
}

// BrokerFlowResponse is the broker flow table.
type BrokerFlowResponse struct {
	Rows []BrokerFlowRowResponse `json:"rows"`
}

// AssetFlowRowResponse is the payment status of one asset.
type AssetFlowRowResponse struct {
	AssetID          string          `json:"asset_id"`
	Name             string          `json:"name"`
	CustomerID       string          `json:"customer_id"`
	InvestmentIDs    []string        `json:"investment_ids"`
	PrincipalPending decimal.Decimal `json:"principal_pending"`
	ArrearsInterest  decimal.Decimal `json:"arrears_interest"`
	LastPaymentAt    *time.Time      `json:"last_payment_at,omitempty"`
	Released         bool            `json:"released"`
	Status           string          `json:"status"`
}

// AssetFlowResponse is the asset flow table.
type AssetFlowResponse struct {
	Rows []AssetFlowRowResponse `json:"rows"`
	AsOf time.Time              `json:"as_of"`
}

// DashboardPointResponse holds the sums of one bucket.
type DashboardPointResponse struct {
	Key                string          `json:"key"`
	Start              time.Time       `json:"start"`
	Invested           decimal.Decimal `json:"invested"`
	CustomerPaid       decimal.Decimal `json:"customer_paid"`
	InterestCollected  decimal.Decimal `json:"interest_collected"`
	PrincipalCollected decimal.Decimal `json:"principal_collected"`
	ExcessCollected    decimal.Decimal `json:"excess_collected"`
	BrokerPaid         decimal.Decimal `json:"broker_paid"`
	RealProfit         decimal.Decimal `json:"real_profit"`
}

// DashboardResponse is a bucketed time series plus totals.
type DashboardResponse struct {
	Bucket string                   `json:"bucket"`
	Points []DashboardPointResponse `json:"points"`
	Totals DashboardPointResponse   `json:"totals"`
}

// CustomerPaymentEntryResponse is one customer ledger row.
type CustomerPaymentEntryResponse struct {
	ID                 string          `json:"id"`
	Amount             decimal.Decimal `json:"amount"`
	InterestPart       decimal.Decimal `json:"interest_part"`
	PrincipalPart      decimal.Decimal `json:"principal_part"`
	ExcessAmount       decimal.Decimal `json:"excess_amount"`
	Mode               string          `json:"mode"`
	Method             string          `json:"method"`
	InterestPaidTotal  decimal.Decimal `json:"interest_paid_total"`
	PrincipalPaidTotal decimal.Decimal `json:"principal_paid_total"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	PrincipalFullyPaid bool            `json:"principal_fully_paid"`
	Note               string          `json:"note,omitempty"`
	PaidAt             time.Time       `json:"paid_at"`
}

// InvestmentHistoryResponse is the statement of one investment.
type InvestmentHistoryResponse struct {
	Investment InvestmentResponse             `json:"investment"`
	Accrual    AccrualResponse                `json:"accrual"`
	Commission CommissionPositionResponse     `json:"commission"`
	Payments   []CustomerPaymentEntryResponse `json:"payments"`
}

// BrokerPaymentEntryResponse is one broker ledger row.
type BrokerPaymentEntryResponse struct {
	ID          string                     `json:"id"`
	Amount      decimal.Decimal            `json:"amount"`
	Allocations []BrokerAllocationResponse `json:"allocations"`
	Note        string                     `json:"note,omitempty"`
	PaidAt      time.Time                  `json:"paid_at"`
}

// BrokerHistoryResponse is the statement of one broker.
type BrokerHistoryResponse struct {
	Commission BrokerCommissionResponse     `json:"commission"`
	TotalPaid  decimal.Decimal              `json:"total_paid"`
	Payments   []BrokerPaymentEntryResponse `json:"payments"`
}
