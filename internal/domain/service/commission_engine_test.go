package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/service"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

func brokerBook(t *testing.T) []model.Investment {
	t.Helper()
	// Newest first on purpose; the engine must reorder.
	return []model.Investment{
		investment(t, investmentOpts{id: "inv-2", interestPaid: "15000", start: day(2026, time.February, 1)}),
		investment(t, investmentOpts{id: "inv-1", interestPaid: "10000", start: day(2026, time.January, 1)}),
	}
}

func TestCommissionEngine_Position(t *testing.T) {
	engine := service.NewCommissionEngine()

	tests := []struct {
		name        string
		opts        investmentOpts
		wantTotal   string
		wantPending string
	}{
		{"nothing paid yet", investmentOpts{}, "0", "0"},
		{"unlocked by paid interest", investmentOpts{interestPaid: "10000"}, "2000", "2000"},
		{"partly paid out", investmentOpts{interestPaid: "10000", brokerPaid: "500"}, "2000", "1500"},
		{"overpaid clamps pending", investmentOpts{interestPaid: "10000", brokerPaid: "2500"}, "2000", "0"},
		{"principal payments unlock nothing", investmentOpts{principalPaid: "50000"}, "0", "0"},
		{"fractional rate", investmentOpts{interestPaid: "333", commission: "12.5"}, "41.625", "41.625"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := engine.Position(investment(t, tt.opts))
			assert.True(t, d(tt.wantTotal).Equal(p.TotalCommission), "total %s", p.TotalCommission)
			assert.True(t, d(tt.wantPending).Equal(p.Pending), "pending %s", p.Pending)
		})
	}
}

func TestCommissionEngine_Summarize(t *testing.T) {
	summary := service.NewCommissionEngine().Summarize(brokerBook(t))

	assert.True(t, d("5000").Equal(summary.TotalCommission))
	assert.True(t, summary.Paid.IsZero())
	assert.True(t, d("5000").Equal(summary.Pending))
	require.Len(t, summary.Positions, 2)
	assert.Equal(t, "inv-1", summary.Positions[0].InvestmentID)
	assert.Equal(t, "inv-2", summary.Positions[1].InvestmentID)
}

func TestCommissionEngine_AllocateOldestFirst(t *testing.T) {
	engine := service.NewCommissionEngine()
	now := day(2026, time.March, 1)

	res, err := engine.Allocate(brokerBook(t), d("4000"), now)
	require.NoError(t, err)

	require.Len(t, res.Allocations, 2)
	assert.Equal(t, "inv-1", res.Allocations[0].InvestmentID)
	assert.True(t, d("2000").Equal(res.Allocations[0].Amount))
	assert.Equal(t, "inv-2", res.Allocations[1].InvestmentID)
	assert.True(t, d("2000").Equal(res.Allocations[1].Amount))
	assert.True(t, d("5000").Equal(res.PendingTotal))

	require.Len(t, res.Investments, 2)
	assert.True(t, engine.Position(res.Investments[0]).Pending.IsZero())
	assert.True(t, d("1000").Equal(engine.Position(res.Investments[1]).Pending))
	assert.True(t, d("2000").Equal(res.Investments[1].LastBrokerPaymentAmount()))
	assert.Equal(t, now, res.Investments[1].LastBrokerPaymentAt())
}

func TestCommissionEngine_AllocateSkipsSettledAndStopsEarly(t *testing.T) {
	invs := []model.Investment{
		investment(t, investmentOpts{id: "a", interestPaid: "10000", brokerPaid: "2000", start: day(2025, time.June, 1)}),
		investment(t, investmentOpts{id: "b", interestPaid: "10000", start: day(2025, time.July, 1)}),
		investment(t, investmentOpts{id: "c", interestPaid: "10000", start: day(2025, time.August, 1)}),
	}

	res, err := service.NewCommissionEngine().Allocate(invs, d("1500"), day(2026, time.January, 1))
	require.NoError(t, err)

	require.Len(t, res.Allocations, 1)
	assert.Equal(t, "b", res.Allocations[0].InvestmentID)
	assert.True(t, d("1500").Equal(res.Allocations[0].Amount))
}

func TestCommissionEngine_AllocateTieBreaksOnID(t *testing.T) {
	created := day(2026, time.January, 1)
	invs := []model.Investment{
		investment(t, investmentOpts{id: "z", interestPaid: "10000", start: created}),
		investment(t, investmentOpts{id: "m", interestPaid: "10000", start: created}),
	}

	res, err := service.NewCommissionEngine().Allocate(invs, d("2500"), created)
	require.NoError(t, err)

	require.Len(t, res.Allocations, 2)
	assert.Equal(t, "m", res.Allocations[0].InvestmentID)
	assert.Equal(t, "z", res.Allocations[1].InvestmentID)
}

func TestCommissionEngine_AllocateRejections(t *testing.T) {
	engine := service.NewCommissionEngine()
	now := day(2026, time.March, 1)

	tests := []struct {
		name    string
		invs    []model.Investment
		amount  decimal.Decimal
		wantErr error
	}{
		{"zero amount", brokerBook(t), decimal.Zero, valueobject.ErrValidation},
		{"negative amount", brokerBook(t), d("-1"), valueobject.ErrValidation},
		{"overpay", brokerBook(t), d("5000.01"), valueobject.ErrConsistency},
		{"nothing pending", []model.Investment{investment(t, investmentOpts{})}, d("1"), valueobject.ErrConsistency},
		{"no investments", nil, d("1"), valueobject.ErrConsistency},
		{"mixed brokers", []model.Investment{
			investment(t, investmentOpts{id: "a", interestPaid: "100"}),
			investment(t, investmentOpts{id: "b", brokerID: "broker-2", interestPaid: "100"}),
		}, d("1"), valueobject.ErrConsistency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Allocate(tt.invs, tt.amount, now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCommissionEngine_AllocateSumsToAmount(t *testing.T) {
	engine := service.NewCommissionEngine()
	for _, amount := range []string{"0.01", "1999.99", "2000", "3333.33", "5000"} {
		t.Run(amount, func(t *testing.T) {
			res, err := engine.Allocate(brokerBook(t), d(amount), day(2026, time.March, 1))
			require.NoError(t, err)

			total := decimal.Zero
			for i, a := range res.Allocations {
				assert.True(t, a.Amount.IsPositive())
				pending := engine.Position(res.Investments[i]).Pending
				assert.False(t, pending.IsNegative())
				total = total.Add(a.Amount)
			}
			assert.True(t, d(amount).Equal(total), "allocated %s", total)
		})
	}
}
