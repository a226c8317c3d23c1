package usecase

import (
	"context"
	"fmt"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/port"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/service"
)

// GetInvestmentAccrualUseCase reports the accrual state of one investment.
type GetInvestmentAccrualUseCase struct {
	investments port.InvestmentRepository
	accrual     *service.AccrualEngine
	clock       port.Clock
}

// NewGetInvestmentAccrualUseCase wires dependencies.
func NewGetInvestmentAccrualUseCase(
	investments port.InvestmentRepository,
	accrual *service.AccrualEngine,
	clock port.Clock,
) *GetInvestmentAccrualUseCase {
	return &GetInvestmentAccrualUseCase{investments: investments, accrual: accrual, clock: clock}
}

// Execute computes the accrual as of now.
func (uc *GetInvestmentAccrualUseCase) Execute(
	ctx context.Context,
	req dto.GetInvestmentRequest,
) (dto.AccrualResponse, error) {
	id, err := parseID(req.InvestmentID, "investment")
	if err != nil {
		return dto.AccrualResponse{}, err
	}
	inv, err := uc.investments.FindByID(ctx, id)
	if err != nil {
		return dto.AccrualResponse{}, fmt.Errorf("find investment: %w", err)
	}
	now := uc.clock.Now()
	return toAccrualResponse(inv.ID(), uc.accrual.Compute(inv, now), now), nil
}

// GetCustomerPositionUseCase rolls up every investment of one customer.
type GetCustomerPositionUseCase struct {
	customers   port.CustomerRepository
	investments port.InvestmentRepository
	accrual     *service.AccrualEngine
	reports     *service.ReportBuilder
	clock       port.Clock
}

// NewGetCustomerPositionUseCase wires dependencies.
func NewGetCustomerPositionUseCase(
	customers port.CustomerRepository,
	investments port.InvestmentRepository,
	accrual *service.AccrualEngine,
	reports *service.ReportBuilder,
	clock port.Clock,
) *GetCustomerPositionUseCase {
	return &GetCustomerPositionUseCase{
		customers:   customers,
		investments: investments,
		accrual:     accrual,
		reports:     reports,
		clock:       clock,
	}
}

// Execute returns the customer's aggregate position and per-investment accruals.
func (uc *GetCustomerPositionUseCase) Execute(
	ctx context.Context,
	req dto.GetCustomerRequest,
) (dto.CustomerPositionResponse, error) {
	nic, err := parseNIC(req.CustomerNIC, "customer")
	if err != nil {
		return dto.CustomerPositionResponse{}, err
	}
	customer, err := uc.customers.FindByNIC(ctx, nic)
	if err != nil {
		return dto.CustomerPositionResponse{}, fmt.Errorf("find customer: %w", err)
	}
	invs, err := uc.investments.FindByCustomerID(ctx, customer.ID())
	if err != nil {
		return dto.CustomerPositionResponse{}, fmt.Errorf("find investments: %w", err)
	}

	now := uc.clock.Now()
	row := uc.reports.CustomerPosition(invs, now)
	row.CustomerID = customer.ID()
	row.NIC = customer.NIC().String()
	row.Name = customer.Name()

	accruals := make([]dto.AccrualResponse, 0, len(invs))
	for _, inv := range invs {
		accruals = append(accruals, toAccrualResponse(inv.ID(), uc.accrual.Compute(inv, now), now))
	}
	return dto.CustomerPositionResponse{
		CustomerFlowRowResponse: toCustomerFlowRowResponse(row),
		Accruals:                accruals,
	}, nil
}

// GetBrokerCommissionUseCase reports a broker's commission book.
type GetBrokerCommissionUseCase struct {
	brokers     port.BrokerRepository
	investments port.InvestmentRepository
	commission  *service.CommissionEngine
}

// NewGetBrokerCommissionUseCase wires dependencies.
func NewGetBrokerCommissionUseCase(
	brokers port.BrokerRepository,
	investments port.InvestmentRepository,
	commission *service.CommissionEngine,
) *GetBrokerCommissionUseCase {
	return &GetBrokerCommissionUseCase{brokers: brokers, investments: investments, commission: commission}
}

// Execute returns per-investment positions oldest-first plus totals.
func (uc *GetBrokerCommissionUseCase) Execute(
	ctx context.Context,
	req dto.GetBrokerRequest,
) (dto.BrokerCommissionResponse, error) {
	nic, err := parseNIC(req.BrokerNIC, "broker")
	if err != nil {
		return dto.BrokerCommissionResponse{}, err
	}
	broker, err := uc.brokers.FindByNIC(ctx, nic)
	if err != nil {
		return dto.BrokerCommissionResponse{}, fmt.Errorf("find broker: %w", err)
	}
	invs, err := uc.investments.FindByBrokerID(ctx, broker.ID())
	if err != nil {
		return dto.BrokerCommissionResponse{}, fmt.Errorf("find investments: %w", err)
	}
	return toBrokerCommissionResponse(broker, uc.commission.Summarize(invs)), nil
}
