package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// PaymentAllocator – splits a customer payment across interest and principal
// ---------------------------------------------------------------------------

// CustomerAllocation is the outcome of allocating one customer payment.
type CustomerAllocation struct {
	// Investment is the updated copy with the payment booked.
	Investment model.Investment
	// Before is the accrual the split was computed from.
	Before Accrual

	InterestOutstanding decimal.Decimal
	InterestPart        decimal.Decimal
	PrincipalPart       decimal.Decimal
	ExcessAmount        decimal.Decimal
	ArrearsAfter        decimal.Decimal

	// Settled is true when no principal and no arrears remain; the backing
	// assets are then due for release.
	Settled bool
}

// PaymentAllocator applies customer payments to investments.
type PaymentAllocator struct {
	accrual *AccrualEngine
}

// NewPaymentAllocator wires the allocator to the accrual engine.
func NewPaymentAllocator(accrual *AccrualEngine) *PaymentAllocator {
	return &PaymentAllocator{accrual: accrual}
}

// Allocate splits amount according to mode and books it on inv.
//
// Interest payable includes the month in progress on top of what is
// already overdue, so a customer can pay the current month ahead of its due
// date. Anything left after the requested buckets are filled is excess: it is
// recorded on the ledger entry but never reduces interest or principal.
func (a *PaymentAllocator) Allocate(
	inv model.Investment,
	amount decimal.Decimal,
	mode valueobject.AllocationMode,
	now time.Time,
) (CustomerAllocation, error) {
	if !amount.IsPositive() {
		return CustomerAllocation{}, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	if mode.IsZero() {
		return CustomerAllocation{}, fmt.Errorf("%w: allocation mode is required", valueobject.ErrValidation)
	}
	if !inv.HasAssets() {
		return CustomerAllocation{}, fmt.Errorf("%w: investment %s has no backing assets", valueobject.ErrConsistency, inv.ID())
	}

	// 1. Accrual as of now.
	before := a.accrual.Compute(inv, now)

	// 2. Interest payable now, including the current month.
	outstanding := money.ClampZero(before.PastDueInterest.Add(before.MonthlyInterest).Sub(inv.InterestPaid()))

	// 3. Fill the requested buckets, interest first.
	remaining := amount
	interestPart := decimal.Zero
	principalPart := decimal.Zero
	if mode.CoversInterest() {
		interestPart = money.Min(outstanding, remaining)
		remaining = remaining.Sub(interestPart)
	}
	if mode.CoversPrincipal() {
		principalPart = money.Min(before.PrincipalPending, remaining)
		remaining = remaining.Sub(principalPart)
	}

	// 4. Whatever is left is excess.
	excess := money.ClampZero(remaining)

	// 5. Book the payment.
	next, err := inv.ApplyCustomerPayment(amount, interestPart, principalPart, before.PrincipalPending, now)
	if err != nil {
		return CustomerAllocation{}, fmt.Errorf("apply payment: %w", err)
	}

	// 6. Settlement check against strict arrears. An investment that was
	// already complete stays settled without a second settlement event.
	arrearsAfter := money.ClampZero(before.PastDueInterest.Sub(next.InterestPaid()))
	settled := !next.PrincipalPending().IsPositive() && !arrearsAfter.IsPositive()
	if settled && !before.Status.Equal(valueobject.AccrualStatusComplete) {
		next = next.MarkSettled(now)
	}

	return CustomerAllocation{
		Investment:          next,
		Before:              before,
		InterestOutstanding: outstanding,
		InterestPart:        interestPart,
		PrincipalPart:       principalPart,
		ExcessAmount:        excess,
		ArrearsAfter:        arrearsAfter,
		Settled:             settled,
	}, nil
}
