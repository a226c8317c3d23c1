// Package money holds the decimal helpers shared by the accrual, allocation and
// commission calculations. All arithmetic stays at full precision; Round2 is
// applied only where figures leave the domain.
package money

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SafeNumber coerces v to a finite decimal. Anything that cannot be read as a
// finite number (nil, NaN, Inf, malformed strings, unknown types) yields def.
func SafeNumber(v any, def decimal.Decimal) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return def
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return def
		}
		return *n
	case decimal.NullDecimal:
		if !n.Valid {
			return def
		}
		return n.Decimal
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt32(n)
	case int64:
		return decimal.NewFromInt(n)
	case float32:
		return fromFloat(float64(n), def)
	case float64:
		return fromFloat(n, def)
	case json.Number:
		return fromString(string(n), def)
	case string:
		return fromString(n, def)
	default:
		return def
	}
}

func fromFloat(f float64, def decimal.Decimal) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string, def decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// Percent returns amount * ratePercent / 100.
func Percent(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(ratePercent).Div(hundred)
}

// MonthlyInterest is the interest one full month accrues on principal.
func MonthlyInterest(principal, ratePercent decimal.Decimal) decimal.Decimal {
	return ClampZero(Percent(principal, ratePercent))
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
