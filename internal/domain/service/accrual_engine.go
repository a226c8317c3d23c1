package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/calendar"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// AccrualEngine – interest and arrears for a single investment
// ---------------------------------------------------------------------------

// Accrual is the state of one investment at a reference instant.
type Accrual struct {
	MonthlyInterest  decimal.Decimal
	PastDueInterest  decimal.Decimal
	ArrearsInterest  decimal.Decimal
	PrincipalPending decimal.Decimal
	Status           valueobject.AccrualStatus
	DueMonths        int
	ArrearsMonths    int
}

// AccrualTotals sums accruals across several investments.
type AccrualTotals struct {
	MonthlyInterest  decimal.Decimal
	PastDueInterest  decimal.Decimal
	ArrearsInterest  decimal.Decimal
	PrincipalPending decimal.Decimal
	Status           valueobject.AccrualStatus
	ArrearsMonths    int
	Investments      int
}

// AccrualEngine is the single place accrual math lives. Every report,
// history view and payment path calls it instead of re-deriving figures.
type AccrualEngine struct{}

// NewAccrualEngine returns a new engine instance.
func NewAccrualEngine() *AccrualEngine {
	return &AccrualEngine{}
}

// Compute evaluates inv as of now.
//
// Interest for a month only falls due once that month has fully elapsed, so
// a loan one day into its second month is in arrears for month one at most.
func (e *AccrualEngine) Compute(inv model.Investment, now time.Time) Accrual {
	monthly := money.MonthlyInterest(inv.Principal(), inv.InterestRate())
	dueMonths := calendar.FullMonthsElapsed(inv.StartDate(), now)
	pastDue := monthly.Mul(decimal.NewFromInt(int64(dueMonths)))
	arrears := money.ClampZero(pastDue.Sub(inv.InterestPaid()))
	pending := inv.PrincipalPending()

	arrearsMonths := 0
	if arrears.IsPositive() && monthly.IsPositive() {
		arrearsMonths = int(arrears.Div(monthly).Ceil().IntPart())
	}

	return Accrual{
		MonthlyInterest:  monthly,
		DueMonths:        dueMonths,
		PastDueInterest:  pastDue,
		ArrearsInterest:  arrears,
		PrincipalPending: pending,
		ArrearsMonths:    arrearsMonths,
		Status:           classify(pending, arrears),
	}
}

// ComputeAll evaluates every investment as of the same instant.
func (e *AccrualEngine) ComputeAll(invs []model.Investment, now time.Time) []Accrual {
	out := make([]Accrual, 0, len(invs))
	for _, inv := range invs {
		out = append(out, e.Compute(inv, now))
	}
	return out
}

// Aggregate sums accruals, arrears months included, and applies the
// cross-investment status rule.
func (e *AccrualEngine) Aggregate(accruals []Accrual) AccrualTotals {
	totals := AccrualTotals{
		MonthlyInterest:  decimal.Zero,
		PastDueInterest:  decimal.Zero,
		ArrearsInterest:  decimal.Zero,
		PrincipalPending: decimal.Zero,
		Investments:      len(accruals),
	}
	for _, a := range accruals {
		totals.MonthlyInterest = totals.MonthlyInterest.Add(a.MonthlyInterest)
		totals.PastDueInterest = totals.PastDueInterest.Add(a.PastDueInterest)
		totals.ArrearsInterest = totals.ArrearsInterest.Add(a.ArrearsInterest)
		totals.PrincipalPending = totals.PrincipalPending.Add(a.PrincipalPending)
		totals.ArrearsMonths += a.ArrearsMonths
	}
	totals.Status = AggregateStatus(accruals)
	return totals
}

// AggregateStatus is complete for no investments, else arrears if any
// investment is in arrears, else pending if any is pending, else complete.
func AggregateStatus(accruals []Accrual) valueobject.AccrualStatus {
	anyPending := false
	for _, a := range accruals {
		if a.Status.Equal(valueobject.AccrualStatusArrears) {
			return valueobject.AccrualStatusArrears
		}
		if a.Status.Equal(valueobject.AccrualStatusPending) {
			anyPending = true
		}
	}
	if anyPending {
		return valueobject.AccrualStatusPending
	}
	return valueobject.AccrualStatusComplete
}

func classify(principalPending, arrears decimal.Decimal) valueobject.AccrualStatus {
	switch {
	case !principalPending.IsPositive() && !arrears.IsPositive():
		return valueobject.AccrualStatusComplete
	case arrears.IsPositive():
		return valueobject.AccrualStatusArrears
	default:
		return valueobject.AccrualStatusPending
	}
}
