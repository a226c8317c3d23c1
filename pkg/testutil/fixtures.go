package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed identifiers for deterministic testing.
var (
	TestCustomerID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestBrokerID   = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestAssetID1   = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	TestAssetID2   = uuid.MustParse("00000000-0000-0000-0000-000000000012")
)

// Valid NICs in both accepted formats.
const (
	TestCustomerNIC = "200012345678"
	TestBrokerNIC   = "881234567V"
)

// Colombo is the business time zone used by fixtures. It falls back to a
// fixed +05:30 zone when tzdata is unavailable.
var Colombo = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Colombo")
	if err != nil {
		return time.FixedZone("Asia/Colombo", 5*60*60+30*60)
	}
	return loc
}()

// Date returns midnight of the given day in Colombo.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, Colombo)
}
