package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/usecase"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/service"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

func reportBuilder() *service.ReportBuilder {
	return service.NewReportBuilder(service.NewAccrualEngine(), service.NewCommissionEngine(), 30)
}

func TestGetInvestmentAccrual_Execute(t *testing.T) {
	t.Run("computes arrears as of the clock", func(t *testing.T) {
		invs := &mockInvestmentRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Investment, error) {
				return testInvestment(nil), nil
			},
		}
		now := day(2026, time.March, 5)
		uc := usecase.NewGetInvestmentAccrualUseCase(invs, service.NewAccrualEngine(), fixedClock{at: now})

		resp, err := uc.Execute(context.Background(), dto.GetInvestmentRequest{InvestmentID: investmentID})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.DueMonths)
		assert.True(t, d("20000").Equal(resp.ArrearsInterest))
		assert.Equal(t, 2, resp.ArrearsMonths)
		assert.Equal(t, "arrears", resp.Status)
		assert.Equal(t, now, resp.AsOf)
	})

	t.Run("rejects malformed ID", func(t *testing.T) {
		uc := usecase.NewGetInvestmentAccrualUseCase(&mockInvestmentRepository{}, service.NewAccrualEngine(), fixedClock{})

		_, err := uc.Execute(context.Background(), dto.GetInvestmentRequest{InvestmentID: "nope"})

		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("trims the ID before the lookup", func(t *testing.T) {
		invs := &mockInvestmentRepository{
			findByIDFunc: func(_ context.Context, id string) (model.Investment, error) {
				assert.Equal(t, investmentID, id)
				return testInvestment(nil), nil
			},
		}
		uc := usecase.NewGetInvestmentAccrualUseCase(invs, service.NewAccrualEngine(), fixedClock{at: day(2026, time.March, 5)})

		_, err := uc.Execute(context.Background(), dto.GetInvestmentRequest{InvestmentID: " " + investmentID + " "})

		require.NoError(t, err)
	})

	t.Run("propagates not found", func(t *testing.T) {
		uc := usecase.NewGetInvestmentAccrualUseCase(&mockInvestmentRepository{}, service.NewAccrualEngine(), fixedClock{})

		_, err := uc.Execute(context.Background(), dto.GetInvestmentRequest{InvestmentID: investmentID})

		assert.ErrorIs(t, err, valueobject.ErrNotFound)
		assert.Contains(t, err.Error(), "find investment")
	})
}

func TestGetCustomerPosition_Execute(t *testing.T) {
	t.Run("aggregates with the worst status winning", func(t *testing.T) {
		invs := &mockInvestmentRepository{
			findByCustomerFunc: func(_ context.Context, id string) ([]model.Investment, error) {
				assert.Equal(t, customerID, id)
				return []model.Investment{
					testInvestment(nil),
					testInvestment(func(s *model.InvestmentSnapshot) {
						s.ID = olderInvestmentID
						s.Principal = d("20000")
						s.InterestRate = d("5")
						s.InterestPaid = d("2000")
					}),
				}, nil
			},
		}
		uc := usecase.NewGetCustomerPositionUseCase(
			&mockCustomerRepository{findByNICFunc: customerByNIC()}, invs,
			service.NewAccrualEngine(), reportBuilder(), fixedClock{at: day(2026, time.March, 5)},
		)

		resp, err := uc.Execute(context.Background(), dto.GetCustomerRequest{CustomerNIC: customerNIC})

		require.NoError(t, err)
		assert.Equal(t, customerID, resp.CustomerID)
		assert.Equal(t, customerNIC, resp.CustomerNIC)
		assert.Equal(t, 2, resp.Investments)
		assert.Equal(t, "arrears", resp.Status)
		assert.True(t, d("20000").Equal(resp.ArrearsInterest))
		require.Len(t, resp.Accruals, 2)
		assert.Equal(t, "pending", resp.Accruals[1].Status)
	})

	t.Run("customer without investments is complete", func(t *testing.T) {
		uc := usecase.NewGetCustomerPositionUseCase(
			&mockCustomerRepository{findByNICFunc: customerByNIC()}, &mockInvestmentRepository{},
			service.NewAccrualEngine(), reportBuilder(), fixedClock{at: day(2026, time.March, 5)},
		)

		resp, err := uc.Execute(context.Background(), dto.GetCustomerRequest{CustomerNIC: customerNIC})

		require.NoError(t, err)
		assert.Equal(t, "complete", resp.Status)
		assert.Empty(t, resp.Accruals)
	})
}

func TestGetBrokerCommission_Execute(t *testing.T) {
	invs := &mockInvestmentRepository{
		findByBrokerFunc: func(_ context.Context, _ string) ([]model.Investment, error) {
			return brokerInvestments(), nil
		},
	}
	uc := usecase.NewGetBrokerCommissionUseCase(
		&mockBrokerRepository{findByNICFunc: brokerByNIC()}, invs, service.NewCommissionEngine())

	resp, err := uc.Execute(context.Background(), dto.GetBrokerRequest{BrokerNIC: "881234567v"})

	require.NoError(t, err)
	assert.Equal(t, brokerNIC, resp.BrokerNIC)
	assert.True(t, d("5000").Equal(resp.TotalCommission))
	assert.True(t, d("5000").Equal(resp.Pending))
	require.Len(t, resp.Positions, 2)
	assert.Equal(t, olderInvestmentID, resp.Positions[0].InvestmentID)
}

func TestFlowReports_Execute(t *testing.T) {
	now := day(2026, time.March, 5)
	invRepo := &mockInvestmentRepository{
		listFunc: func(_ context.Context) ([]model.Investment, error) {
			return []model.Investment{testInvestment(nil)}, nil
		},
	}

	t.Run("customer flow", func(t *testing.T) {
		customers := &mockCustomerRepository{
			listFunc: func(_ context.Context) ([]model.Customer, error) { return []model.Customer{testCustomer()}, nil },
		}
		uc := usecase.NewCustomerFlowUseCase(customers, invRepo, reportBuilder(), fixedClock{at: now})

		resp, err := uc.Execute(context.Background(), dto.FlowReportRequest{})

		require.NoError(t, err)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "Nimal Perera", resp.Rows[0].Name)
		assert.Equal(t, 1, resp.Rows[0].Investments)
		assert.Equal(t, now, resp.AsOf)
	})

	t.Run("broker flow", func(t *testing.T) {
		brokers := &mockBrokerRepository{
			listFunc: func(_ context.Context) ([]model.Broker, error) { return []model.Broker{testBroker()}, nil },
		}
		uc := usecase.NewBrokerFlowUseCase(brokers, invRepo, reportBuilder())

		resp, err := uc.Execute(context.Background(), dto.FlowReportRequest{})

		require.NoError(t, err)
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, brokerNIC, resp.Rows[0].BrokerNIC)
		assert.True(t, resp.Rows[0].Pending.IsZero())
	})

	t.Run("asset flow", func(t *testing.T) {
		assets := &mockAssetRepository{
			listFunc: func(_ context.Context) ([]model.Asset, error) {
				return []model.Asset{testAsset(assetID1, customerID, false), testAsset(assetID2, customerID, false)}, nil
			},
		}
		uc := usecase.NewAssetFlowUseCase(assets, invRepo, reportBuilder(), fixedClock{at: now})

		resp, err := uc.Execute(context.Background(), dto.FlowReportRequest{})

		require.NoError(t, err)
		require.Len(t, resp.Rows, 2)
		assert.Equal(t, "arrears", resp.Rows[0].Status)
		assert.Equal(t, []string{investmentID}, resp.Rows[0].InvestmentIDs)
		assert.Equal(t, "finished", resp.Rows[1].Status)
		assert.Equal(t, []string{}, resp.Rows[1].InvestmentIDs)
	})

	t.Run("list failure is wrapped", func(t *testing.T) {
		failing := &mockInvestmentRepository{
			listFunc: func(_ context.Context) ([]model.Investment, error) {
				return nil, fmt.Errorf("%w: pool closed", valueobject.ErrPersistence)
			},
		}
		uc := usecase.NewBrokerFlowUseCase(&mockBrokerRepository{}, failing, reportBuilder())

		_, err := uc.Execute(context.Background(), dto.FlowReportRequest{})

		assert.ErrorIs(t, err, valueobject.ErrPersistence)
		assert.Contains(t, err.Error(), "list investments")
	})
}

func TestDashboard_Execute(t *testing.T) {
	colombo := time.FixedZone("LKT", 5*3600+1800)
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, colombo)

	var gotFrom, gotTo time.Time
	cps := &mockCustomerPaymentLedger{
		listBetweenFunc: func(_ context.Context, from, to time.Time) ([]model.CustomerPayment, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	invs := &mockInvestmentRepository{
		listFunc: func(_ context.Context) ([]model.Investment, error) {
			return []model.Investment{testInvestment(nil)}, nil
		},
	}
	uc := usecase.NewDashboardUseCase(invs, cps, &mockBrokerPaymentLedger{}, reportBuilder(), fixedClock{at: now})

	t.Run("defaults to this year by month", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.DashboardRequest{})

		require.NoError(t, err)
		assert.Equal(t, "month", resp.Bucket)
		require.Len(t, resp.Points, 3)
		assert.Equal(t, "2026-01", resp.Points[0].Key)
		assert.True(t, d("100000").Equal(resp.Points[0].Invested))
		assert.True(t, d("100000").Equal(resp.Totals.Invested))
		assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, colombo), gotFrom)
		assert.Equal(t, now, gotTo)
	})

	t.Run("rejects unknown bucket", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.DashboardRequest{Bucket: "week"})

		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.DashboardRequest{
			Bucket: "day",
			From:   day(2026, time.March, 2),
			To:     day(2026, time.March, 1),
		})

		assert.ErrorIs(t, err, valueobject.ErrValidation)
	})

	t.Run("rejects bad ranges before reading the store", func(t *testing.T) {
		reads := 0
		untouched := usecase.NewDashboardUseCase(
			&mockInvestmentRepository{listFunc: func(context.Context) ([]model.Investment, error) {
				reads++
				return nil, nil
			}},
			&mockCustomerPaymentLedger{listBetweenFunc: func(context.Context, time.Time, time.Time) ([]model.CustomerPayment, error) {
				reads++
				return nil, nil
			}},
			&mockBrokerPaymentLedger{listBetweenFunc: func(context.Context, time.Time, time.Time) ([]model.BrokerPayment, error) {
				reads++
				return nil, nil
			}},
			reportBuilder(), fixedClock{at: now},
		)

		for name, req := range map[string]dto.DashboardRequest{
			"inverted":  {Bucket: "month", From: day(2026, time.March, 2), To: day(2026, time.January, 1)},
			"empty":     {Bucket: "day", From: day(2026, time.March, 2), To: day(2026, time.March, 2)},
			"too large": {Bucket: "day", From: day(2000, time.January, 1), To: day(2026, time.January, 1)},
		} {
			_, err := untouched.Execute(context.Background(), req)
			assert.ErrorIs(t, err, valueobject.ErrValidation, name)
		}
		assert.Zero(t, reads)
	})
}

func TestInvestmentHistory_Execute(t *testing.T) {
	older := model.ReconstructCustomerPayment(model.CustomerPaymentSnapshot{
		ID: "older", InvestmentID: investmentID, Amount: d("100.005"),
		Mode: valueobject.AllocationInterest, Method: valueobject.PaymentMethodCash,
		PaidAt: day(2026, time.January, 20),
	})
	newer := model.ReconstructCustomerPayment(model.CustomerPaymentSnapshot{
		ID: "newer", InvestmentID: investmentID, Amount: d("200"),
		Mode: valueobject.AllocationInterest, Method: valueobject.PaymentMethodCheck,
		PaidAt: day(2026, time.February, 20),
	})
	uc := usecase.NewInvestmentHistoryUseCase(
		&mockInvestmentRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Investment, error) { return testInvestment(nil), nil },
		},
		&mockCustomerPaymentLedger{
			findByInvFunc: func(_ context.Context, _ string) ([]model.CustomerPayment, error) {
				return []model.CustomerPayment{older, newer}, nil
			},
		},
		reportBuilder(), fixedClock{at: day(2026, time.March, 5)},
	)

	resp, err := uc.Execute(context.Background(), dto.GetInvestmentRequest{InvestmentID: investmentID})

	require.NoError(t, err)
	assert.Equal(t, investmentID, resp.Investment.ID)
	assert.Equal(t, "arrears", resp.Accrual.Status)
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "newer", resp.Payments[0].ID)
	assert.Equal(t, "check", resp.Payments[0].Method)
	assert.True(t, d("100.01").Equal(resp.Payments[1].Amount))
}

func TestBrokerHistory_Execute(t *testing.T) {
	payment := model.ReconstructBrokerPayment("bp-1", brokerID, d("1500"),
		[]model.BrokerAllocation{{InvestmentID: olderInvestmentID, Amount: d("1500")}}, "", day(2026, time.February, 1))
	uc := usecase.NewBrokerHistoryUseCase(
		&mockBrokerRepository{findByNICFunc: brokerByNIC()},
		&mockInvestmentRepository{
			findByBrokerFunc: func(_ context.Context, _ string) ([]model.Investment, error) { return brokerInvestments(), nil },
		},
		&mockBrokerPaymentLedger{
			findByBroker: func(_ context.Context, _ string) ([]model.BrokerPayment, error) {
				return []model.BrokerPayment{payment}, nil
			},
		},
		reportBuilder(),
	)

	resp, err := uc.Execute(context.Background(), dto.GetBrokerRequest{BrokerNIC: brokerNIC})

	require.NoError(t, err)
	assert.True(t, d("1500").Equal(resp.TotalPaid))
	require.Len(t, resp.Payments, 1)
	require.Len(t, resp.Payments[0].Allocations, 1)
	assert.Equal(t, olderInvestmentID, resp.Payments[0].Allocations[0].InvestmentID)
	assert.True(t, d("5000").Equal(resp.Commission.TotalCommission))
}
