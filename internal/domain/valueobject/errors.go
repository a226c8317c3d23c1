package valueobject

import "errors"

// ---------------------------------------------------------------------------
// Error kinds
// ---------------------------------------------------------------------------

// Every rejection raised by the domain or its adapters wraps exactly one of
// these sentinels so callers can tell the kinds apart with errors.Is.
var (
	// ErrValidation marks malformed input: bad NIC, missing field,
	// non-positive amount, unknown enum value, unparsable ID.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a customer, broker, investment or asset that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConsistency marks a well-formed request that contradicts stored state:
	// ownership mismatch, investment without assets, broker overpay.
	ErrConsistency = errors.New("consistency error")

	// ErrPersistence marks a failure of the underlying store.
	ErrPersistence = errors.New("persistence error")
)
