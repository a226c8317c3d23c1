package valueobject

import (
	"fmt"
	"regexp"
	"strings"
)

// Accepted forms: 12 digits, or 11 or 9 digits followed by V or X.
var nicRe = regexp.MustCompile(`^(\d{12}|\d{11}[VX]|\d{9}[VX])$`)

// NIC is a Sri Lankan National Identity Card number. The trailing letter is
// stored upper-cased so lookups are case-insensitive.
type NIC struct {
	value string
}

// NewNIC validates and normalises a raw NIC.
func NewNIC(s string) (NIC, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if !nicRe.MatchString(v) {
		return NIC{}, fmt.Errorf("%w: invalid NIC format %q", ErrValidation, s)
	}
	return NIC{value: v}, nil
}

// MustNIC panics on an invalid NIC. Intended for tests and fixtures.
func MustNIC(s string) NIC {
	n, err := NewNIC(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the normalised NIC.
func (n NIC) String() string { return n.value }

// IsZero returns true if the NIC has not been initialised.
func (n NIC) IsZero() bool { return n.value == "" }

// Equal returns true when both NICs carry the same value.
func (n NIC) Equal(other NIC) bool { return n.value == other.value }
