package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

const (
	customerNIC  = "200012345678"
	brokerNIC    = "881234567V"
	customerID   = "11111111-1111-4111-8111-111111111111"
	brokerID     = "22222222-2222-4222-8222-222222222222"
	investmentID = "33333333-3333-4333-8333-333333333333"
	assetID1     = "44444444-4444-4444-8444-444444444444"
	assetID2     = "55555555-5555-4555-8555-555555555555"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func testCustomer() model.Customer {
	at := day(2025, time.January, 1)
	return model.ReconstructCustomer(customerID, valueobject.MustNIC(customerNIC), "Nimal Perera",
		"0771234567", "Kandy", 1, at, at)
}

func testBroker() model.Broker {
	at := day(2025, time.January, 1)
	return model.ReconstructBroker(brokerID, valueobject.MustNIC(brokerNIC), "Ruwan Silva",
		"0719876543", "Colombo", 1, at, at)
}

func testAsset(id, owner string, released bool) model.Asset {
	at := day(2025, time.January, 1)
	var releasedAt time.Time
	if released {
		releasedAt = at
	}
	return model.ReconstructAsset(id, owner, brokerID, "Gold chain", "22k", d("250000"),
		released, releasedAt, "", 1, at, at)
}

// testInvestment returns a stored investment; mutate tweaks the snapshot
// before reconstruction.
func testInvestment(mutate func(s *model.InvestmentSnapshot)) model.Investment {
	start := day(2026, time.January, 2)
	s := model.InvestmentSnapshot{
		ID:             investmentID,
		CustomerID:     customerID,
		BrokerID:       brokerID,
		AssetIDs:       []string{assetID1},
		Principal:      d("100000"),
		InterestRate:   d("10"),
		CommissionRate: d("20"),
		StartDate:      start,
		InterestPaid:   decimal.Zero,
		PrincipalPaid:  decimal.Zero,
		TotalPaid:      decimal.Zero,
		Remaining:      valueobject.DerivedRemaining(),
		BrokerPaid:     decimal.Zero,
		Version:        1,
		CreatedAt:      start,
		UpdatedAt:      start,
	}
	if mutate != nil {
		mutate(&s)
	}
	return model.ReconstructInvestment(s)
}

func customerByNIC() func(context.Context, valueobject.NIC) (model.Customer, error) {
	return func(_ context.Context, _ valueobject.NIC) (model.Customer, error) {
		return testCustomer(), nil
	}
}

func brokerByNIC() func(context.Context, valueobject.NIC) (model.Broker, error) {
	return func(_ context.Context, _ valueobject.NIC) (model.Broker, error) {
		return testBroker(), nil
	}
}
