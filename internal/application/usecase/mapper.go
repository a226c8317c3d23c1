package usecase

import (
	"time"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/service"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/money"
)

// Money leaves the application layer rounded to two places.

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toInvestmentResponse(inv model.Investment) dto.InvestmentResponse {
	return dto.InvestmentResponse{
		ID:                  inv.ID(),
		CustomerID:          inv.CustomerID(),
		BrokerID:            inv.BrokerID(),
		AssetIDs:            inv.AssetIDs(),
		Principal:           money.Round2(inv.Principal()),
		InterestRate:        inv.InterestRate(),
		CommissionRate:      inv.CommissionRate(),
		StartDate:           inv.StartDate(),
		InterestPaid:        money.Round2(inv.InterestPaid()),
		PrincipalPaid:       money.Round2(inv.PrincipalPaid()),
		TotalPaid:           money.Round2(inv.TotalPaid()),
		PrincipalPending:    money.Round2(inv.PrincipalPending()),
		BrokerPaid:          money.Round2(inv.BrokerPaid()),
		LastPaymentAmount:   money.Round2(inv.LastPaymentAmount()),
		LastPaymentAt:       timePtr(inv.LastPaymentAt()),
		LastBrokerPaymentAt: timePtr(inv.LastBrokerPaymentAt()),
		CreatedAt:           inv.CreatedAt(),
		UpdatedAt:           inv.UpdatedAt(),
	}
}

func toAccrualResponse(investmentID string, a service.Accrual, asOf time.Time) dto.AccrualResponse {
	return dto.AccrualResponse{
		InvestmentID:     investmentID,
		MonthlyInterest:  money.Round2(a.MonthlyInterest),
		DueMonths:        a.DueMonths,
		PastDueInterest:  money.Round2(a.PastDueInterest),
		ArrearsInterest:  money.Round2(a.ArrearsInterest),
		ArrearsMonths:    a.ArrearsMonths,
		PrincipalPending: money.Round2(a.PrincipalPending),
		Status:           a.Status.String(),
		AsOf:             asOf,
	}
}

func toCommissionPositionResponse(p service.CommissionPosition) dto.CommissionPositionResponse {
	return dto.CommissionPositionResponse{
		InvestmentID:    p.InvestmentID,
		TotalCommission: money.Round2(p.TotalCommission),
		Paid:            money.Round2(p.Paid),
		Pending:         money.Round2(p.Pending),
	}
}

func toBrokerCommissionResponse(b model.Broker, s service.CommissionSummary) dto.BrokerCommissionResponse {
	positions := make([]dto.CommissionPositionResponse, 0, len(s.Positions))
	for _, p := range s.Positions {
		positions = append(positions, toCommissionPositionResponse(p))
	}
	return dto.BrokerCommissionResponse{
		BrokerID:        b.ID(),
		BrokerNIC:       b.NIC().String(),
		Name:            b.Name(),
		TotalCommission: money.Round2(s.TotalCommission),
		Paid:            money.Round2(s.Paid),
		Pending:         money.Round2(s.Pending),
		Positions:       positions,
	}
}

func toCustomerFlowRowResponse(r service.CustomerFlowRow) dto.CustomerFlowRowResponse {
	return dto.CustomerFlowRowResponse{
		CustomerID:       r.CustomerID,
		CustomerNIC:      r.NIC,
		Name:             r.Name,
		Investments:      r.Investments,
		TotalPrincipal:   r.TotalPrincipal,
		PrincipalPending: r.PrincipalPending,
		MonthlyInterest:  r.MonthlyInterest,
		ArrearsInterest:  r.ArrearsInterest,
		ArrearsMonths:    r.ArrearsMonths,
		InterestPaid:     r.InterestPaid,
		PrincipalPaid:    r.PrincipalPaid,
		TotalPaid:        r.TotalPaid,
		Status:           r.Status.String(),
	}
}

func toBrokerFlowRowResponse(r service.BrokerFlowRow) dto.BrokerFlowRowResponse {
	return dto.BrokerFlowRowResponse{
		BrokerID:          r.BrokerID,
		BrokerNIC:         r.NIC,
		Name:              r.Name,
		Investments:       r.Investments,
		InterestCollected: r.InterestCollected,
		TotalCommission:   r.TotalCommission,
		Paid:              r.Paid,
		Pending:           r.Pending,
	}
}

func toAssetFlowRowResponse(r service.AssetFlowRow) dto.AssetFlowRowResponse {
	ids := r.InvestmentIDs
	if ids == nil {
		ids = []string{}
	}
	return dto.AssetFlowRowResponse{
		AssetID:          r.AssetID,
		Name:             r.Name,
		CustomerID:       r.CustomerID,
		InvestmentIDs:    ids,
		PrincipalPending: r.PrincipalPending,
		ArrearsInterest:  r.ArrearsInterest,
		LastPaymentAt:    timePtr(r.LastPaymentAt),
		Released:         r.Released,
		Status:           r.Status.String(),
	}
}

func toDashboardPointResponse(p service.DashboardPoint) dto.DashboardPointResponse {
	return dto.DashboardPointResponse{
		Key:                p.Key,
		Start:              p.Start,
		Invested:           p.Invested,
		CustomerPaid:       p.CustomerPaid,
		InterestCollected:  p.InterestCollected,
		PrincipalCollected: p.PrincipalCollected,
		ExcessCollected:    p.ExcessCollected,
		BrokerPaid:         p.BrokerPaid,
		RealProfit:         p.RealProfit,
	}
}

func toCustomerPaymentEntryResponse(p model.CustomerPayment) dto.CustomerPaymentEntryResponse {
	return dto.CustomerPaymentEntryResponse{
		ID:                 p.ID(),
		Amount:             money.Round2(p.Amount()),
		InterestPart:       money.Round2(p.InterestPart()),
		PrincipalPart:      money.Round2(p.PrincipalPart()),
		ExcessAmount:       money.Round2(p.ExcessAmount()),
		Mode:               p.Mode().String(),
		Method:             p.Method().String(),
		InterestPaidTotal:  money.Round2(p.InterestPaidTotal()),
		PrincipalPaidTotal: money.Round2(p.PrincipalPaidTotal()),
		TotalPaid:          money.Round2(p.TotalPaid()),
		RemainingPrincipal: money.Round2(p.RemainingPrincipal()),
		PrincipalFullyPaid: p.PrincipalFullyPaid(),
		Note:               p.Note(),
		PaidAt:             p.PaidAt(),
	}
}

func toBrokerAllocationResponses(allocs []model.BrokerAllocation) []dto.BrokerAllocationResponse {
	out := make([]dto.BrokerAllocationResponse, 0, len(allocs))
	for _, a := range allocs {
		out = append(out, dto.BrokerAllocationResponse{
			InvestmentID: a.InvestmentID,
			Amount:       money.Round2(a.Amount),
		})
	}
	return out
}

func toBrokerPaymentEntryResponse(p model.BrokerPayment) dto.BrokerPaymentEntryResponse {
	return dto.BrokerPaymentEntryResponse{
		ID:          p.ID(),
		Amount:      money.Round2(p.Amount()),
		Allocations: toBrokerAllocationResponses(p.Allocations()),
		Note:        p.Note(),
		PaidAt:      p.PaidAt(),
	}
}
