package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

func TestNewCustomerPayment(t *testing.T) {
	inv := newTestInvestment(t)
	after, err := inv.ApplyCustomerPayment(d("15000"), d("10000"), d("5000"), d("100000"), testNow)
	require.NoError(t, err)

	t.Run("snapshots cumulative totals", func(t *testing.T) {
		p, err := model.NewCustomerPayment(after, d("15000"), d("10000"), d("5000"), decimal.Zero,
			valueobject.AllocationInterestAndPrincipal, valueobject.PaymentMethodCash, "Feb instalment", testNow)
		require.NoError(t, err)

		assert.NotEmpty(t, p.ID())
		assert.Equal(t, after.ID(), p.InvestmentID())
		assert.Equal(t, "cust-1", p.CustomerID())
		assert.Equal(t, "broker-1", p.BrokerID())
		assert.True(t, d("10000").Equal(p.InterestPaidTotal()))
		assert.True(t, d("5000").Equal(p.PrincipalPaidTotal()))
		assert.True(t, d("15000").Equal(p.TotalPaid()))
		assert.True(t, d("95000").Equal(p.RemainingPrincipal()))
		assert.False(t, p.PrincipalFullyPaid())
		assert.Equal(t, "Feb instalment", p.Note())
		require.Len(t, p.DomainEvents(), 1)
		assert.Equal(t, "holdings.customer_payment.recorded", p.DomainEvents()[0].EventType())
	})

	t.Run("split must equal amount", func(t *testing.T) {
		_, err := model.NewCustomerPayment(after, d("15000"), d("10000"), d("4000"), decimal.Zero,
			valueobject.AllocationInterestAndPrincipal, valueobject.PaymentMethodCash, "", testNow)
		assert.ErrorIs(t, err, valueobject.ErrConsistency)
	})

	t.Run("requires mode and method", func(t *testing.T) {
		_, err := model.NewCustomerPayment(after, d("1"), d("1"), decimal.Zero, decimal.Zero,
			valueobject.AllocationMode{}, valueobject.PaymentMethodCash, "", testNow)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("principal fully paid flag", func(t *testing.T) {
		paidOff, err := inv.ApplyCustomerPayment(d("100000"), decimal.Zero, d("100000"), d("100000"), testNow)
		require.NoError(t, err)
		p, err := model.NewCustomerPayment(paidOff, d("100000"), decimal.Zero, d("100000"), decimal.Zero,
			valueobject.AllocationPrincipal, valueobject.PaymentMethodCheck, "", testNow)
		require.NoError(t, err)
		assert.True(t, p.PrincipalFullyPaid())
	})
}

func TestNewBrokerPayment(t *testing.T) {
	allocs := []model.BrokerAllocation{
		{InvestmentID: "inv-1", Amount: d("2000")},
		{InvestmentID: "inv-2", Amount: d("2000")},
	}

	t.Run("records allocations", func(t *testing.T) {
		p, err := model.NewBrokerPayment("broker-1", d("4000"), allocs, "March commission", testNow)
		require.NoError(t, err)

		assert.NotEmpty(t, p.ID())
		assert.Equal(t, allocs, p.Allocations())
		require.Len(t, p.DomainEvents(), 1)
		assert.Equal(t, "holdings.broker_payment.recorded", p.DomainEvents()[0].EventType())

		got := p.Allocations()
		got[0].Amount = d("1")
		assert.True(t, d("2000").Equal(p.Allocations()[0].Amount))
	})

	t.Run("allocations must sum to amount", func(t *testing.T) {
		_, err := model.NewBrokerPayment("broker-1", d("5000"), allocs, "", testNow)
		assert.ErrorIs(t, err, valueobject.ErrConsistency)
	})

	t.Run("needs allocations", func(t *testing.T) {
		_, err := model.NewBrokerPayment("broker-1", d("5000"), nil, "", testNow)
		assert.ErrorIs(t, err, valueobject.ErrConsistency)
	})

	t.Run("rejects non-positive allocation", func(t *testing.T) {
		_, err := model.NewBrokerPayment("broker-1", d("0"), allocs, "", testNow)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
		_, err = model.NewBrokerPayment("broker-1", d("1"), []model.BrokerAllocation{{InvestmentID: "x", Amount: d("1")}, {InvestmentID: "y", Amount: decimal.Zero}}, "", testNow)
		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})
}

func TestNewParties(t *testing.T) {
	nic := valueobject.MustNIC("199012345678")

	c, err := model.NewCustomer(nic, "  Nimal Perera ", "0771234567", "Kandy", testNow)
	require.NoError(t, err)
	assert.Equal(t, "Nimal Perera", c.Name())
	assert.True(t, nic.Equal(c.NIC()))

	_, err = model.NewCustomer(valueobject.NIC{}, "x", "", "", testNow)
	assert.ErrorIs(t, err, valueobject.ErrValidation)

	b, err := model.NewBroker(valueobject.MustNIC("851234567V"), "Sunil", "", "", testNow)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID())

	_, err = model.NewBroker(nic, "", "", "", testNow)
	assert.ErrorIs(t, err, valueobject.ErrValidation)
}
