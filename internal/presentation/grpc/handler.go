package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// UseCase is the shape shared by the application use cases.
type UseCase[Req, Resp any] interface {
	Execute(ctx context.Context, req Req) (Resp, error)
}

// UseCases groups everything the handler dispatches to.
type UseCases struct {
	Originate         UseCase[dto.OriginateInvestmentRequest, dto.InvestmentResponse]
	RecordPayment     UseCase[dto.RecordCustomerPaymentRequest, dto.CustomerPaymentResponse]
	PayBroker         UseCase[dto.PayBrokerRequest, dto.BrokerPaymentResponse]
	InvestmentAccrual UseCase[dto.GetInvestmentRequest, dto.AccrualResponse]
	CustomerPosition  UseCase[dto.GetCustomerRequest, dto.CustomerPositionResponse]
	BrokerCommission  UseCase[dto.GetBrokerRequest, dto.BrokerCommissionResponse]
	CustomerFlow      UseCase[dto.FlowReportRequest, dto.CustomerFlowResponse]
	BrokerFlow        UseCase[dto.FlowReportRequest, dto.BrokerFlowResponse]
	AssetFlow         UseCase[dto.FlowReportRequest, dto.AssetFlowResponse]
	Dashboard         UseCase[dto.DashboardRequest, dto.DashboardResponse]
	InvestmentHistory UseCase[dto.GetInvestmentRequest, dto.InvestmentHistoryResponse]
	BrokerHistory     UseCase[dto.GetBrokerRequest, dto.BrokerHistoryResponse]
}

// PaymentObserver is told about every payment the handler books.
type PaymentObserver interface {
	CustomerPayment(mode, method string, settled bool, interest, principal, excess decimal.Decimal, released int)
	BrokerPayment(amount decimal.Decimal)
}

// HoldingsHandler implements HoldingsServiceServer.
type HoldingsHandler struct {
	uc       UseCases
	observer PaymentObserver
	logger   *slog.Logger
}

var _ HoldingsServiceServer = (*HoldingsHandler)(nil)

// NewHoldingsHandler creates the handler. observer may be nil.
func NewHoldingsHandler(uc UseCases, observer PaymentObserver, logger *slog.Logger) *HoldingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HoldingsHandler{uc: uc, observer: observer, logger: logger}
}

// OriginateInvestment lends to a customer against pledged assets.
func (h *HoldingsHandler) OriginateInvestment(ctx context.Context, req *dto.OriginateInvestmentRequest) (*dto.InvestmentResponse, error) {
	return dispatch(ctx, h, "OriginateInvestment", req, h.uc.Originate)
}

// RecordCustomerPayment books a customer payment against one investment.
func (h *HoldingsHandler) RecordCustomerPayment(ctx context.Context, req *dto.RecordCustomerPaymentRequest) (*dto.CustomerPaymentResponse, error) {
	resp, err := dispatch(ctx, h, "RecordCustomerPayment", req, h.uc.RecordPayment)
	if err == nil && h.observer != nil {
		h.observer.CustomerPayment(req.Mode, req.Method, resp.Settled,
			resp.InterestPart, resp.PrincipalPart, resp.ExcessAmount, len(resp.ReleasedAssetIDs))
	}
	return resp, err
}

// PayBroker books a lump commission payment.
func (h *HoldingsHandler) PayBroker(ctx context.Context, req *dto.PayBrokerRequest) (*dto.BrokerPaymentResponse, error) {
	resp, err := dispatch(ctx, h, "PayBroker", req, h.uc.PayBroker)
	if err == nil && h.observer != nil {
		h.observer.BrokerPayment(resp.Amount)
	}
	return resp, err
}

// GetInvestmentAccrual returns what one investment owes as of now.
func (h *HoldingsHandler) GetInvestmentAccrual(ctx context.Context, req *dto.GetInvestmentRequest) (*dto.AccrualResponse, error) {
	return dispatch(ctx, h, "GetInvestmentAccrual", req, h.uc.InvestmentAccrual)
}

// GetCustomerPosition returns a customer's aggregate position.
func (h *HoldingsHandler) GetCustomerPosition(ctx context.Context, req *dto.GetCustomerRequest) (*dto.CustomerPositionResponse, error) {
	return dispatch(ctx, h, "GetCustomerPosition", req, h.uc.CustomerPosition)
}

// GetBrokerCommission returns a broker's commission positions.
func (h *HoldingsHandler) GetBrokerCommission(ctx context.Context, req *dto.GetBrokerRequest) (*dto.BrokerCommissionResponse, error) {
	return dispatch(ctx, h, "GetBrokerCommission", req, h.uc.BrokerCommission)
}

// GetCustomerFlow returns the customer flow table.
func (h *HoldingsHandler) GetCustomerFlow(ctx context.Context, req *dto.FlowReportRequest) (*dto.CustomerFlowResponse, error) {
	return dispatch(ctx, h, "GetCustomerFlow", req, h.uc.CustomerFlow)
}

// GetBrokerFlow returns the broker flow table.
func (h *HoldingsHandler) GetBrokerFlow(ctx context.Context, req *dto.FlowReportRequest) (*dto.BrokerFlowResponse, error) {
	return dispatch(ctx, h, "GetBrokerFlow", req, h.uc.BrokerFlow)
}

// GetAssetFlow returns the asset flow table.
func (h *HoldingsHandler) GetAssetFlow(ctx context.Context, req *dto.FlowReportRequest) (*dto.AssetFlowResponse, error) {
	return dispatch(ctx, h, "GetAssetFlow", req, h.uc.AssetFlow)
}

// GetDashboard returns the bucketed money series.
func (h *HoldingsHandler) GetDashboard(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error) {
	return dispatch(ctx, h, "GetDashboard", req, h.uc.Dashboard)
}

// GetInvestmentHistory returns an investment statement with its payments.
func (h *HoldingsHandler) GetInvestmentHistory(ctx context.Context, req *dto.GetInvestmentRequest) (*dto.InvestmentHistoryResponse, error) {
	return dispatch(ctx, h, "GetInvestmentHistory", req, h.uc.InvestmentHistory)
}

// GetBrokerHistory returns a broker's commission statement with payments.
func (h *HoldingsHandler) GetBrokerHistory(ctx context.Context, req *dto.GetBrokerRequest) (*dto.BrokerHistoryResponse, error) {
	return dispatch(ctx, h, "GetBrokerHistory", req, h.uc.BrokerHistory)
}

func dispatch[Req, Resp any](ctx context.Context, h *HoldingsHandler, method string, req *Req, uc UseCase[Req, Resp]) (*Resp, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if uc == nil {
		return nil, status.Errorf(codes.Unimplemented, "method %s not implemented", method)
	}
	resp, err := uc.Execute(ctx, *req)
	if err != nil {
		st := toStatus(err)
		if st.Code() == codes.Internal {
			h.logger.ErrorContext(ctx, "request failed", "method", method, "error", err)
		}
		return nil, st.Err()
	}
	return &resp, nil
}

// toStatus maps domain error kinds onto gRPC codes. Store failures are
// reported without their detail.
func toStatus(err error) *status.Status {
	switch {
	case errors.Is(err, context.Canceled):
		return status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.New(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, valueobject.ErrPersistence):
		return status.New(codes.Internal, "internal error")
	case errors.Is(err, valueobject.ErrValidation):
		return status.New(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrNotFound):
		return status.New(codes.NotFound, err.Error())
	case errors.Is(err, valueobject.ErrConsistency):
		return status.New(codes.FailedPrecondition, err.Error())
	default:
		return status.New(codes.Internal, "internal error")
	}
}
