package grpc

// proto.go defines the gRPC service descriptor for ranrev.holdings.v1.HoldingsService.
// Messages travel as JSON through the codec registered in json_codec.go, so
// the request and response types are the application DTOs.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
)

const serviceName = "ranrev.holdings.v1.HoldingsService"

// HoldingsServiceServer is the server API for HoldingsService.
type HoldingsServiceServer interface {
	OriginateInvestment(context.Context, *dto.OriginateInvestmentRequest) (*dto.InvestmentResponse, error)
	RecordCustomerPayment(context.Context, *dto.RecordCustomerPaymentRequest) (*dto.CustomerPaymentResponse, error)
	PayBroker(context.Context, *dto.PayBrokerRequest) (*dto.BrokerPaymentResponse, error)
	GetInvestmentAccrual(context.Context, *dto.GetInvestmentRequest) (*dto.AccrualResponse, error)
	GetCustomerPosition(context.Context, *dto.GetCustomerRequest) (*dto.CustomerPositionResponse, error)
	GetBrokerCommission(context.Context, *dto.GetBrokerRequest) (*dto.BrokerCommissionResponse, error)
	GetCustomerFlow(context.Context, *dto.FlowReportRequest) (*dto.CustomerFlowResponse, error)
	GetBrokerFlow(context.Context, *dto.FlowReportRequest) (*dto.BrokerFlowResponse, error)
	GetAssetFlow(context.Context, *dto.FlowReportRequest) (*dto.AssetFlowResponse, error)
	GetDashboard(context.Context, *dto.DashboardRequest) (*dto.DashboardResponse, error)
	GetInvestmentHistory(context.Context, *dto.GetInvestmentRequest) (*dto.InvestmentHistoryResponse, error)
	GetBrokerHistory(context.Context, *dto.GetBrokerRequest) (*dto.BrokerHistoryResponse, error)
}

// RegisterHoldingsServiceServer registers srv with the gRPC server.
func RegisterHoldingsServiceServer(s grpclib.ServiceRegistrar, srv HoldingsServiceServer) {
	s.RegisterService(&holdingsServiceDesc, srv)
}

// FullMethod returns the wire name of a HoldingsService method.
func FullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

var holdingsServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*HoldingsServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		unary("OriginateInvestment", HoldingsServiceServer.OriginateInvestment),
		unary("RecordCustomerPayment", HoldingsServiceServer.RecordCustomerPayment),
		unary("PayBroker", HoldingsServiceServer.PayBroker),
		unary("GetInvestmentAccrual", HoldingsServiceServer.GetInvestmentAccrual),
		unary("GetCustomerPosition", HoldingsServiceServer.GetCustomerPosition),
		unary("GetBrokerCommission", HoldingsServiceServer.GetBrokerCommission),
		unary("GetCustomerFlow", HoldingsServiceServer.GetCustomerFlow),
		unary("GetBrokerFlow", HoldingsServiceServer.GetBrokerFlow),
		unary("GetAssetFlow", HoldingsServiceServer.GetAssetFlow),
		unary("GetDashboard", HoldingsServiceServer.GetDashboard),
		unary("GetInvestmentHistory", HoldingsServiceServer.GetInvestmentHistory),
		unary("GetBrokerHistory", HoldingsServiceServer.GetBrokerHistory),
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "ranrev/holdings/v1/holdings.proto",
}

// unary adapts a typed server method to the untyped handler signature of
// grpc.MethodDesc, running it through the interceptor chain when present.
func unary[Req, Resp any](
	method string,
	call func(HoldingsServiceServer, context.Context, *Req) (*Resp, error),
) grpclib.MethodDesc {
	fullMethod := FullMethod(method)
	return grpclib.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, status.Errorf(codes.InvalidArgument, "decode %s: %v", method, err)
			}
			if interceptor == nil {
				return call(srv.(HoldingsServiceServer), ctx, in)
			}
			info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(HoldingsServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
