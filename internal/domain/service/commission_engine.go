package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// CommissionEngine – broker commission unlocked by paid interest
// ---------------------------------------------------------------------------

// CommissionPosition is a broker's commission on one investment.
type CommissionPosition struct {
	InvestmentID    string
	TotalCommission decimal.Decimal
	Paid            decimal.Decimal
	Pending         decimal.Decimal
}

// CommissionSummary sums positions across a broker's investments.
type CommissionSummary struct {
	TotalCommission decimal.Decimal
	Paid            decimal.Decimal
	Pending         decimal.Decimal
	Positions       []CommissionPosition
}

// BrokerAllocationResult is the outcome of splitting a lump broker payment.
type BrokerAllocationResult struct {
	Allocations []model.BrokerAllocation
	// Investments holds the updated copies of every investment that
	// received part of the payment, in allocation order.
	Investments  []model.Investment
	PendingTotal decimal.Decimal
}

// CommissionEngine computes and pays out broker commission.
type CommissionEngine struct{}

// NewCommissionEngine returns a new engine instance.
func NewCommissionEngine() *CommissionEngine {
	return &CommissionEngine{}
}

// Position computes the commission unlocked on inv. Commission accrues only
// on interest the customer has actually paid.
func (e *CommissionEngine) Position(inv model.Investment) CommissionPosition {
	total := money.ClampZero(money.Percent(inv.InterestPaid(), inv.CommissionRate()))
	return CommissionPosition{
		InvestmentID:    inv.ID(),
		TotalCommission: total,
		Paid:            inv.BrokerPaid(),
		Pending:         money.ClampZero(total.Sub(inv.BrokerPaid())),
	}
}

// Summarize sums positions for invs, keeping them oldest-first.
func (e *CommissionEngine) Summarize(invs []model.Investment) CommissionSummary {
	summary := CommissionSummary{
		TotalCommission: decimal.Zero,
		Paid:            decimal.Zero,
		Pending:         decimal.Zero,
		Positions:       make([]CommissionPosition, 0, len(invs)),
	}
	for _, inv := range oldestFirst(invs) {
		p := e.Position(inv)
		summary.TotalCommission = summary.TotalCommission.Add(p.TotalCommission)
		summary.Paid = summary.Paid.Add(p.Paid)
		summary.Pending = summary.Pending.Add(p.Pending)
		summary.Positions = append(summary.Positions, p)
	}
	return summary
}

// Allocate spreads payAmount over invs, settling the longest-outstanding
// commission first. Paying more than is pending is rejected outright.
func (e *CommissionEngine) Allocate(
	invs []model.Investment,
	payAmount decimal.Decimal,
	now time.Time,
) (BrokerAllocationResult, error) {
	if !payAmount.IsPositive() {
		return BrokerAllocationResult{}, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	if err := sameBroker(invs); err != nil {
		return BrokerAllocationResult{}, err
	}

	// 1. Oldest-first by creation time.
	ordered := oldestFirst(invs)

	// 2. Pending per investment.
	pending := make([]decimal.Decimal, len(ordered))
	total := decimal.Zero
	for i, inv := range ordered {
		pending[i] = e.Position(inv).Pending
		total = total.Add(pending[i])
	}

	// 3. Nothing payable, or overpay.
	if !total.IsPositive() {
		return BrokerAllocationResult{}, fmt.Errorf("%w: no commission pending", valueobject.ErrConsistency)
	}
	if payAmount.GreaterThan(total) {
		return BrokerAllocationResult{}, fmt.Errorf("%w: payment %s exceeds pending commission %s",
			valueobject.ErrConsistency, payAmount, total)
	}

	// 4. Walk and allocate.
	result := BrokerAllocationResult{PendingTotal: total}
	remaining := payAmount
	for i, inv := range ordered {
		if !remaining.IsPositive() {
			break
		}
		if !pending[i].IsPositive() {
			continue
		}
		take := money.Min(pending[i], remaining)
		next, err := inv.ApplyBrokerPayment(take, now)
		if err != nil {
			return BrokerAllocationResult{}, fmt.Errorf("apply broker payment to %s: %w", inv.ID(), err)
		}
		result.Allocations = append(result.Allocations, model.BrokerAllocation{InvestmentID: inv.ID(), Amount: take})
		result.Investments = append(result.Investments, next)
		remaining = remaining.Sub(take)
	}

	return result, nil
}

func oldestFirst(invs []model.Investment) []model.Investment {
	out := make([]model.Investment, len(invs))
	copy(out, invs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID() < out[j].ID()
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out
}

func sameBroker(invs []model.Investment) error {
	for i := 1; i < len(invs); i++ {
		if invs[i].BrokerID() != invs[0].BrokerID() {
			return fmt.Errorf("%w: investments belong to different brokers", valueobject.ErrConsistency)
		}
	}
	return nil
}
