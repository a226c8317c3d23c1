package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// investmentOpts describes an investment in terms of its stored fields.
type investmentOpts struct {
	id            string
	customerID    string
	brokerID      string
	assets        []string
	principal     string
	rate          string
	commission    string
	start         time.Time
	created       time.Time
	interestPaid  string
	principalPaid string
	brokerPaid    string
	remaining     *string
	lastPaymentAt time.Time
}

func investment(t *testing.T, o investmentOpts) model.Investment {
	t.Helper()
	or := func(s, def string) string {
		if s == "" {
			return def
		}
		return s
	}
	remaining := valueobject.DerivedRemaining()
	if o.remaining != nil {
		remaining = valueobject.ExplicitRemaining(d(*o.remaining))
	}
	assets := o.assets
	if assets == nil {
		assets = []string{"asset-1"}
	}
	created := o.created
	if created.IsZero() {
		created = o.start
	}
	return model.ReconstructInvestment(model.InvestmentSnapshot{
		ID:             or(o.id, "inv-1"),
		CustomerID:     or(o.customerID, "cust-1"),
		BrokerID:       or(o.brokerID, "broker-1"),
		AssetIDs:       assets,
		Principal:      d(or(o.principal, "100000")),
		InterestRate:   d(or(o.rate, "10")),
		CommissionRate: d(or(o.commission, "20")),
		StartDate:      o.start,
		InterestPaid:   d(or(o.interestPaid, "0")),
		PrincipalPaid:  d(or(o.principalPaid, "0")),
		TotalPaid:      d(or(o.interestPaid, "0")).Add(d(or(o.principalPaid, "0"))),
		Remaining:      remaining,
		LastPaymentAt:  o.lastPaymentAt,
		BrokerPaid:     d(or(o.brokerPaid, "0")),
		Version:        1,
		CreatedAt:      created,
		UpdatedAt:      created,
	})
}

func strPtr(s string) *string { return &s }
