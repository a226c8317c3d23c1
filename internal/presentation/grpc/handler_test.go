package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
)

// --- Fakes ---

type fakeUseCase[Req, Resp any] struct {
	fn    func(ctx context.Context, req Req) (Resp, error)
	calls int
	last  Req
}

func (f *fakeUseCase[Req, Resp]) Execute(ctx context.Context, req Req) (Resp, error) {
	f.calls++
	f.last = req
	if f.fn != nil {
		return f.fn(ctx, req)
	}
	var zero Resp
	return zero, nil
}

type recordedPayment struct {
	mode, method string
	settled      bool
	interest     decimal.Decimal
	released     int
}

type fakeObserver struct {
	customer []recordedPayment
	broker   []decimal.Decimal
}

func (o *fakeObserver) CustomerPayment(mode, method string, settled bool, interest, _, _ decimal.Decimal, released int) {
	o.customer = append(o.customer, recordedPayment{mode: mode, method: method, settled: settled, interest: interest, released: released})
}

func (o *fakeObserver) BrokerPayment(amount decimal.Decimal) {
	o.broker = append(o.broker, amount)
}

// --- Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func requireGRPCCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %v", err)
	assert.Equal(t, want, st.Code(), st.Message())
}

// --- Tests ---

func TestDispatch_NilRequest(t *testing.T) {
	accrual := &fakeUseCase[dto.GetInvestmentRequest, dto.AccrualResponse]{}
	h := NewHoldingsHandler(UseCases{InvestmentAccrual: accrual}, nil, testLogger())

	_, err := h.GetInvestmentAccrual(context.Background(), nil)

	requireGRPCCode(t, err, codes.InvalidArgument)
	assert.Zero(t, accrual.calls)
}

func TestDispatch_UnwiredUseCase(t *testing.T) {
	h := NewHoldingsHandler(UseCases{}, nil, testLogger())

	_, err := h.GetDashboard(context.Background(), &dto.DashboardRequest{})

	requireGRPCCode(t, err, codes.Unimplemented)
}

func TestDispatch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     codes.Code
		wantText string
	}{
		{name: "validation", err: fmt.Errorf("%w: invalid NIC format", valueobject.ErrValidation), want: codes.InvalidArgument, wantText: "invalid NIC"},
		{name: "not found", err: fmt.Errorf("find investment: %w", valueobject.ErrNotFound), want: codes.NotFound},
		{name: "consistency", err: fmt.Errorf("%w: nothing payable", valueobject.ErrConsistency), want: codes.FailedPrecondition, wantText: "nothing payable"},
		{name: "persistence hides detail", err: fmt.Errorf("%w: conn reset by 10.0.0.5", valueobject.ErrPersistence), want: codes.Internal, wantText: "internal error"},
		{name: "persistence wins over validation", err: fmt.Errorf("%w: stored row: %w", valueobject.ErrPersistence, valueobject.ErrValidation), want: codes.Internal},
		{name: "deadline", err: fmt.Errorf("list: %w", context.DeadlineExceeded), want: codes.DeadlineExceeded},
		{name: "unknown", err: errors.New("boom"), want: codes.Internal, wantText: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accrual := &fakeUseCase[dto.GetInvestmentRequest, dto.AccrualResponse]{
				fn: func(context.Context, dto.GetInvestmentRequest) (dto.AccrualResponse, error) {
					return dto.AccrualResponse{}, tt.err
				},
			}
			h := NewHoldingsHandler(UseCases{InvestmentAccrual: accrual}, nil, testLogger())

			resp, err := h.GetInvestmentAccrual(context.Background(), &dto.GetInvestmentRequest{InvestmentID: "x"})

			assert.Nil(t, resp)
			requireGRPCCode(t, err, tt.want)
			if tt.wantText != "" {
				assert.Contains(t, status.Convert(err).Message(), tt.wantText)
			}
			if tt.want == codes.Internal {
				assert.NotContains(t, status.Convert(err).Message(), "10.0.0.5")
			}
		})
	}
}

func TestRecordCustomerPayment(t *testing.T) {
	t.Run("success passes the request through and notifies the observer", func(t *testing.T) {
		record := &fakeUseCase[dto.RecordCustomerPaymentRequest, dto.CustomerPaymentResponse]{
			fn: func(_ context.Context, req dto.RecordCustomerPaymentRequest) (dto.CustomerPaymentResponse, error) {
				return dto.CustomerPaymentResponse{
					PaymentID:        "p-1",
					InvestmentID:     req.InvestmentID,
					Amount:           req.Amount,
					InterestPart:     decimal.RequireFromString("5000"),
					PrincipalPart:    decimal.RequireFromString("100000"),
					Settled:          true,
					ReleasedAssetIDs: []string{"a-1", "a-2"},
					PaidAt:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		observer := &fakeObserver{}
		h := NewHoldingsHandler(UseCases{RecordPayment: record}, observer, testLogger())

		req := &dto.RecordCustomerPaymentRequest{
			InvestmentID: "inv-1",
			CustomerNIC:  "200012345678",
			BrokerNIC:    "881234567V",
			Amount:       decimal.RequireFromString("105000"),
			Mode:         "interest+principal",
			Method:       "cash",
		}
		resp, err := h.RecordCustomerPayment(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "p-1", resp.PaymentID)
		assert.Equal(t, *req, record.last)
		require.Len(t, observer.customer, 1)
		assert.Equal(t, recordedPayment{
			mode: "interest+principal", method: "cash", settled: true,
			interest: decimal.RequireFromString("5000"), released: 2,
		}, observer.customer[0])
	})

	t.Run("failure does not notify", func(t *testing.T) {
		record := &fakeUseCase[dto.RecordCustomerPaymentRequest, dto.CustomerPaymentResponse]{
			fn: func(context.Context, dto.RecordCustomerPaymentRequest) (dto.CustomerPaymentResponse, error) {
				return dto.CustomerPaymentResponse{}, fmt.Errorf("%w: investment does not belong to customer", valueobject.ErrConsistency)
			},
		}
		observer := &fakeObserver{}
		h := NewHoldingsHandler(UseCases{RecordPayment: record}, observer, testLogger())

		_, err := h.RecordCustomerPayment(context.Background(), &dto.RecordCustomerPaymentRequest{})

		requireGRPCCode(t, err, codes.FailedPrecondition)
		assert.Empty(t, observer.customer)
	})
}

func TestPayBroker_NotifiesObserver(t *testing.T) {
	pay := &fakeUseCase[dto.PayBrokerRequest, dto.BrokerPaymentResponse]{
		fn: func(_ context.Context, req dto.PayBrokerRequest) (dto.BrokerPaymentResponse, error) {
			return dto.BrokerPaymentResponse{PaymentID: "bp-1", Amount: req.Amount}, nil
		},
	}
	observer := &fakeObserver{}
	h := NewHoldingsHandler(UseCases{PayBroker: pay}, observer, testLogger())

	resp, err := h.PayBroker(context.Background(), &dto.PayBrokerRequest{BrokerNIC: "881234567V", Amount: decimal.RequireFromString("7000")})

	require.NoError(t, err)
	assert.Equal(t, "bp-1", resp.PaymentID)
	require.Len(t, observer.broker, 1)
	assert.True(t, observer.broker[0].Equal(decimal.RequireFromString("7000")))
}

func TestHandler_ReadsWithoutObserver(t *testing.T) {
	flow := &fakeUseCase[dto.FlowReportRequest, dto.CustomerFlowResponse]{
		fn: func(context.Context, dto.FlowReportRequest) (dto.CustomerFlowResponse, error) {
			return dto.CustomerFlowResponse{Rows: []dto.CustomerFlowRowResponse{{CustomerNIC: "200012345678"}}}, nil
		},
	}
	h := NewHoldingsHandler(UseCases{CustomerFlow: flow}, nil, nil)

	resp, err := h.GetCustomerFlow(context.Background(), &dto.FlowReportRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 1, flow.calls)
}
