package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// AccrualStatus – immutable value object
// ---------------------------------------------------------------------------

// AccrualStatus classifies an investment (or a customer's book) by what it
// still owes.
type AccrualStatus struct {
	value string
}

const (
	accrualStatusComplete = "complete"
	accrualStatusArrears  = "arrears"
	accrualStatusPending  = "pending"
)

var (
	AccrualStatusComplete = AccrualStatus{value: accrualStatusComplete}
	AccrualStatusArrears  = AccrualStatus{value: accrualStatusArrears}
	AccrualStatusPending  = AccrualStatus{value: accrualStatusPending}
)

var validAccrualStatuses = map[string]AccrualStatus{
	accrualStatusComplete: AccrualStatusComplete,
	accrualStatusArrears:  AccrualStatusArrears,
	accrualStatusPending:  AccrualStatusPending,
}

// NewAccrualStatus creates an AccrualStatus from a raw string.
func NewAccrualStatus(s string) (AccrualStatus, error) {
	v, ok := validAccrualStatuses[s]
	if !ok {
		return AccrualStatus{}, fmt.Errorf("%w: invalid accrual status %q", ErrValidation, s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s AccrualStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s AccrualStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s AccrualStatus) Equal(other AccrualStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// AssetFlowStatus – immutable value object
// ---------------------------------------------------------------------------

// AssetFlowStatus is the payment status reported against a collateral asset.
type AssetFlowStatus struct {
	value string
}

const (
	assetFlowFinished = "finished"
	assetFlowArrears  = "arrears"
	assetFlowPending  = "pending"
)

var (
	AssetFlowFinished = AssetFlowStatus{value: assetFlowFinished}
	AssetFlowArrears  = AssetFlowStatus{value: assetFlowArrears}
	AssetFlowPending  = AssetFlowStatus{value: assetFlowPending}
)

// String returns the string representation of the status.
func (s AssetFlowStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s AssetFlowStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s AssetFlowStatus) Equal(other AssetFlowStatus) bool { return s.value == other.value }
