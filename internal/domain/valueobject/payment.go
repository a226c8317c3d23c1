package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// AllocationMode – immutable value object
// ---------------------------------------------------------------------------

// AllocationMode selects which obligations a customer payment is applied to.
type AllocationMode struct {
	value string
}

const (
	allocationInterest             = "interest"
	allocationPrincipal            = "principal"
	allocationInterestAndPrincipal = "interest+principal"
)

var (
	AllocationInterest             = AllocationMode{value: allocationInterest}
	AllocationPrincipal            = AllocationMode{value: allocationPrincipal}
	AllocationInterestAndPrincipal = AllocationMode{value: allocationInterestAndPrincipal}
)

var validAllocationModes = map[string]AllocationMode{
	allocationInterest:             AllocationInterest,
	allocationPrincipal:            AllocationPrincipal,
	allocationInterestAndPrincipal: AllocationInterestAndPrincipal,
}

// NewAllocationMode creates an AllocationMode from a raw string.
func NewAllocationMode(s string) (AllocationMode, error) {
	v, ok := validAllocationModes[s]
	if !ok {
		return AllocationMode{}, fmt.Errorf("%w: invalid allocation mode %q", ErrValidation, s)
	}
	return v, nil
}

// String returns the string representation of the mode.
func (m AllocationMode) String() string { return m.value }

// IsZero returns true if the mode has not been initialised.
func (m AllocationMode) IsZero() bool { return m.value == "" }

// Equal returns true when both modes carry the same value.
func (m AllocationMode) Equal(other AllocationMode) bool { return m.value == other.value }

// CoversInterest reports whether the mode pays interest.
func (m AllocationMode) CoversInterest() bool {
	return m.value == allocationInterest || m.value == allocationInterestAndPrincipal
}

// CoversPrincipal reports whether the mode pays principal.
func (m AllocationMode) CoversPrincipal() bool {
	return m.value == allocationPrincipal || m.value == allocationInterestAndPrincipal
}

// ---------------------------------------------------------------------------
// PaymentMethod – immutable value object
// ---------------------------------------------------------------------------

// PaymentMethod is how a customer handed over the money.
type PaymentMethod struct {
	value string
}

const (
	paymentMethodCash  = "cash"
	paymentMethodCheck = "check"
)

var (
	PaymentMethodCash  = PaymentMethod{value: paymentMethodCash}
	PaymentMethodCheck = PaymentMethod{value: paymentMethodCheck}
)

var validPaymentMethods = map[string]PaymentMethod{
	paymentMethodCash:  PaymentMethodCash,
	paymentMethodCheck: PaymentMethodCheck,
}

// NewPaymentMethod creates a PaymentMethod from a raw string.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	v, ok := validPaymentMethods[s]
	if !ok {
		return PaymentMethod{}, fmt.Errorf("%w: invalid payment method %q", ErrValidation, s)
	}
	return v, nil
}

// String returns the string representation of the method.
func (m PaymentMethod) String() string { return m.value }

// IsZero returns true if the method has not been initialised.
func (m PaymentMethod) IsZero() bool { return m.value == "" }

// Equal returns true when both methods carry the same value.
func (m PaymentMethod) Equal(other PaymentMethod) bool { return m.value == other.value }
