package usecase

import (
	"context"
	"fmt"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/port"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/service"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/calendar"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/money"
)

// ---------------------------------------------------------------------------
// Flow tables
// ---------------------------------------------------------------------------

// CustomerFlowUseCase builds the customer flow table.
type CustomerFlowUseCase struct {
	customers   port.CustomerRepository
	investments port.InvestmentRepository
	reports     *service.ReportBuilder
	clock       port.Clock
}

// NewCustomerFlowUseCase wires dependencies.
func NewCustomerFlowUseCase(
	customers port.CustomerRepository,
	investments port.InvestmentRepository,
	reports *service.ReportBuilder,
	clock port.Clock,
) *CustomerFlowUseCase {
	return &CustomerFlowUseCase{customers: customers, investments: investments, reports: reports, clock: clock}
}

// Execute returns one row per customer.
func (uc *CustomerFlowUseCase) Execute(ctx context.Context, _ dto.FlowReportRequest) (dto.CustomerFlowResponse, error) {
	customers, err := uc.customers.List(ctx)
	if err != nil {
		return dto.CustomerFlowResponse{}, fmt.Errorf("list customers: %w", err)
	}
	invs, err := uc.investments.List(ctx)
	if err != nil {
		return dto.CustomerFlowResponse{}, fmt.Errorf("list investments: %w", err)
	}

	now := uc.clock.Now()
	rows := uc.reports.CustomerFlow(customers, invs, now)
	resp := dto.CustomerFlowResponse{Rows: make([]dto.CustomerFlowRowResponse, 0, len(rows)), AsOf: now}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, toCustomerFlowRowResponse(r))
	}
	return resp, nil
}

// BrokerFlowUseCase builds the broker flow table.
type BrokerFlowUseCase struct {
	brokers     port.BrokerRepository
	investments port.InvestmentRepository
	reports     *service.ReportBuilder
}

// NewBrokerFlowUseCase wires dependencies.
func NewBrokerFlowUseCase(
	brokers port.BrokerRepository,
	investments port.InvestmentRepository,
	reports *service.ReportBuilder,
) *BrokerFlowUseCase {
	return &BrokerFlowUseCase{brokers: brokers, investments: investments, reports: reports}
}

// Execute returns one row per broker.
func (uc *BrokerFlowUseCase) Execute(ctx context.Context, _ dto.FlowReportRequest) (dto.BrokerFlowResponse, error) {
	brokers, err := uc.brokers.List(ctx)
	if err != nil {
		return dto.BrokerFlowResponse{}, fmt.Errorf("list brokers: %w", err)
	}
	invs, err := uc.investments.List(ctx)
	if err != nil {
		return dto.BrokerFlowResponse{}, fmt.Errorf("list investments: %w", err)
	}

	rows := uc.reports.BrokerFlow(brokers, invs)
	resp := dto.BrokerFlowResponse{Rows: make([]dto.BrokerFlowRowResponse, 0, len(rows))}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, toBrokerFlowRowResponse(r))
	}
	return resp, nil
}

// AssetFlowUseCase builds the asset flow table.
type AssetFlowUseCase struct {
	assets      port.AssetRepository
	investments port.InvestmentRepository
	reports     *service.ReportBuilder
	clock       port.Clock
}

// NewAssetFlowUseCase wires dependencies.
func NewAssetFlowUseCase(
	assets port.AssetRepository,
	investments port.InvestmentRepository,
	reports *service.ReportBuilder,
	clock port.Clock,
) *AssetFlowUseCase {
	return &AssetFlowUseCase{assets: assets, investments: investments, reports: reports, clock: clock}
}

// Execute returns one row per asset.
func (uc *AssetFlowUseCase) Execute(ctx context.Context, _ dto.FlowReportRequest) (dto.AssetFlowResponse, error) {
	assets, err := uc.assets.List(ctx)
	if err != nil {
		return dto.AssetFlowResponse{}, fmt.Errorf("list assets: %w", err)
	}
	invs, err := uc.investments.List(ctx)
	if err != nil {
		return dto.AssetFlowResponse{}, fmt.Errorf("list investments: %w", err)
	}

	now := uc.clock.Now()
	rows := uc.reports.AssetFlow(assets, invs, now)
	resp := dto.AssetFlowResponse{Rows: make([]dto.AssetFlowRowResponse, 0, len(rows)), AsOf: now}
	for _, r := range rows {
		resp.Rows = append(resp.Rows, toAssetFlowRowResponse(r))
	}
	return resp, nil
}

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// DashboardUseCase builds bucketed money-movement series.
type DashboardUseCase struct {
	investments      port.InvestmentRepository
	customerPayments port.CustomerPaymentLedger
	brokerPayments   port.BrokerPaymentLedger
	reports          *service.ReportBuilder
	clock            port.Clock
}

// NewDashboardUseCase wires dependencies.
func NewDashboardUseCase(
	investments port.InvestmentRepository,
	customerPayments port.CustomerPaymentLedger,
	brokerPayments port.BrokerPaymentLedger,
	reports *service.ReportBuilder,
	clock port.Clock,
) *DashboardUseCase {
	return &DashboardUseCase{
		investments:      investments,
		customerPayments: customerPayments,
		brokerPayments:   brokerPayments,
		reports:          reports,
		clock:            clock,
	}
}

// Execute returns the series over [From, To), bucketed in the clock's
// location. An empty bucket means month; a zero To means now and a zero
// From means the start of To's year.
func (uc *DashboardUseCase) Execute(ctx context.Context, req dto.DashboardRequest) (dto.DashboardResponse, error) {
	bucketName := req.Bucket
	if bucketName == "" {
		bucketName = calendar.BucketMonth.String()
	}
	bucket, err := calendar.NewBucket(bucketName)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("%w: %v", valueobject.ErrValidation, err)
	}

	now := uc.clock.Now()
	loc := now.Location()
	to := req.To
	if to.IsZero() {
		to = now
	}
	to = to.In(loc)
	from := req.From
	if from.IsZero() {
		from = calendar.BucketYear.Start(to)
	}
	from = from.In(loc)
	if err := uc.reports.ValidateDashboardRange(bucket, from, to); err != nil {
		return dto.DashboardResponse{}, err
	}

	invs, err := uc.investments.List(ctx)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("list investments: %w", err)
	}
	cps, err := uc.customerPayments.ListBetween(ctx, from, to)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("list customer payments: %w", err)
	}
	bps, err := uc.brokerPayments.ListBetween(ctx, from, to)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("list broker payments: %w", err)
	}

	series, err := uc.reports.Dashboard(bucket, from, to, invs, cps, bps)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("build dashboard: %w", err)
	}

	resp := dto.DashboardResponse{
		Bucket: series.Bucket.String(),
		Points: make([]dto.DashboardPointResponse, 0, len(series.Points)),
		Totals: toDashboardPointResponse(series.Totals),
	}
	for _, p := range series.Points {
		resp.Points = append(resp.Points, toDashboardPointResponse(p))
	}
	return resp, nil
}

// ---------------------------------------------------------------------------
// Histories
// ---------------------------------------------------------------------------

// InvestmentHistoryUseCase returns the statement of one investment.
type InvestmentHistoryUseCase struct {
	investments port.InvestmentRepository
	ledger      port.CustomerPaymentLedger
	reports     *service.ReportBuilder
	clock       port.Clock
}

// NewInvestmentHistoryUseCase wires dependencies.
func NewInvestmentHistoryUseCase(
	investments port.InvestmentRepository,
	ledger port.CustomerPaymentLedger,
	reports *service.ReportBuilder,
	clock port.Clock,
) *InvestmentHistoryUseCase {
	return &InvestmentHistoryUseCase{investments: investments, ledger: ledger, reports: reports, clock: clock}
}

// Execute returns the investment, its accrual and its payments newest-first.
func (uc *InvestmentHistoryUseCase) Execute(
	ctx context.Context,
	req dto.GetInvestmentRequest,
) (dto.InvestmentHistoryResponse, error) {
	id, err := parseID(req.InvestmentID, "investment")
	if err != nil {
		return dto.InvestmentHistoryResponse{}, err
	}
	inv, err := uc.investments.FindByID(ctx, id)
	if err != nil {
		return dto.InvestmentHistoryResponse{}, fmt.Errorf("find investment: %w", err)
	}
	payments, err := uc.ledger.FindByInvestmentID(ctx, inv.ID())
	if err != nil {
		return dto.InvestmentHistoryResponse{}, fmt.Errorf("find payments: %w", err)
	}

	now := uc.clock.Now()
	st := uc.reports.Statement(inv, payments, now)
	resp := dto.InvestmentHistoryResponse{
		Investment: toInvestmentResponse(st.Investment),
		Accrual:    toAccrualResponse(inv.ID(), st.Accrual, now),
		Commission: toCommissionPositionResponse(st.Commission),
		Payments:   make([]dto.CustomerPaymentEntryResponse, 0, len(st.Payments)),
	}
	for _, p := range st.Payments {
		resp.Payments = append(resp.Payments, toCustomerPaymentEntryResponse(p))
	}
	return resp, nil
}

// BrokerHistoryUseCase returns the statement of one broker.
type BrokerHistoryUseCase struct {
	brokers     port.BrokerRepository
	investments port.InvestmentRepository
	ledger      port.BrokerPaymentLedger
	reports     *service.ReportBuilder
}

// NewBrokerHistoryUseCase wires dependencies.
func NewBrokerHistoryUseCase(
	brokers port.BrokerRepository,
	investments port.InvestmentRepository,
	ledger port.BrokerPaymentLedger,
	reports *service.ReportBuilder,
) *BrokerHistoryUseCase {
	return &BrokerHistoryUseCase{brokers: brokers, investments: investments, ledger: ledger, reports: reports}
}

// Execute returns the broker's commission book and payments newest-first.
func (uc *BrokerHistoryUseCase) Execute(
	ctx context.Context,
	req dto.GetBrokerRequest,
) (dto.BrokerHistoryResponse, error) {
	nic, err := parseNIC(req.BrokerNIC, "broker")
	if err != nil {
		return dto.BrokerHistoryResponse{}, err
	}
	broker, err := uc.brokers.FindByNIC(ctx, nic)
	if err != nil {
		return dto.BrokerHistoryResponse{}, fmt.Errorf("find broker: %w", err)
	}
	invs, err := uc.investments.FindByBrokerID(ctx, broker.ID())
	if err != nil {
		return dto.BrokerHistoryResponse{}, fmt.Errorf("find investments: %w", err)
	}
	payments, err := uc.ledger.FindByBrokerID(ctx, broker.ID())
	if err != nil {
		return dto.BrokerHistoryResponse{}, fmt.Errorf("find broker payments: %w", err)
	}

	st := uc.reports.BrokerHistory(invs, payments)
	resp := dto.BrokerHistoryResponse{
		Commission: toBrokerCommissionResponse(broker, st.Summary),
		TotalPaid:  money.Round2(st.TotalPaid),
		Payments:   make([]dto.BrokerPaymentEntryResponse, 0, len(st.Payments)),
	}
	for _, p := range st.Payments {
		resp.Payments = append(resp.Payments, toBrokerPaymentEntryResponse(p))
	}
	return resp, nil
}
