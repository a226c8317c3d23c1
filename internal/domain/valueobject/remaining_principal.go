package valueobject

import "github.com/shopspring/decimal"

// RemainingPrincipal records how much principal an investment still owes.
// It is either derived (principal minus principal paid) or an explicit
// amount written by the last payment.
type RemainingPrincipal struct {
	amount   decimal.Decimal
	explicit bool
}

// DerivedRemaining is the variant that defers to principal minus paid.
func DerivedRemaining() RemainingPrincipal {
	return RemainingPrincipal{}
}

// ExplicitRemaining pins the remaining principal to amount.
func ExplicitRemaining(amount decimal.Decimal) RemainingPrincipal {
	return RemainingPrincipal{amount: amount, explicit: true}
}

// RemainingFromNullable maps a nullable stored column onto the variant.
func RemainingFromNullable(d decimal.NullDecimal) RemainingPrincipal {
	if !d.Valid {
		return DerivedRemaining()
	}
	return ExplicitRemaining(d.Decimal)
}

// IsExplicit reports which variant r holds.
func (r RemainingPrincipal) IsExplicit() bool { return r.explicit }

// Amount returns the explicit amount and whether one is set.
func (r RemainingPrincipal) Amount() (decimal.Decimal, bool) {
	return r.amount, r.explicit
}

// Resolve returns the principal still pending, never below zero.
func (r RemainingPrincipal) Resolve(principal, principalPaid decimal.Decimal) decimal.Decimal {
	pending := principal.Sub(principalPaid)
	if r.explicit {
		pending = r.amount
	}
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// Nullable renders r for a nullable column.
func (r RemainingPrincipal) Nullable() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: r.amount, Valid: r.explicit}
}
