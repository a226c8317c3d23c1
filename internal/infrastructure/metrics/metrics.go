// Package metrics holds the Prometheus collectors of the holdings service.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Recorder owns the service's collectors. Build one per registry.
type Recorder struct {
	rpcRequests     *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
	customerPayment *prometheus.CounterVec
	customerAmount  *prometheus.CounterVec
	brokerPayments  prometheus.Counter
	brokerAmount    prometheus.Counter
	assetsReleased  prometheus.Counter
}

// NewRecorder registers the collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		rpcRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holdings_grpc_requests_total",
				Help: "gRPC calls handled, by method and status code",
			},
			[]string{"method", "code"},
		),
		rpcDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "holdings_grpc_request_duration_seconds",
				Help:    "gRPC call latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		customerPayment: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holdings_customer_payments_total",
				Help: "Customer payments recorded, by allocation mode, method and whether they settled the investment",
			},
			[]string{"mode", "method", "settled"},
		),
		customerAmount: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holdings_customer_payment_amount_total",
				Help: "Money received from customers, split by where it was booked",
			},
			[]string{"part"},
		),
		brokerPayments: f.NewCounter(prometheus.CounterOpts{
			Name: "holdings_broker_payments_total",
			Help: "Lump commission payments made to brokers",
		}),
		brokerAmount: f.NewCounter(prometheus.CounterOpts{
			Name: "holdings_broker_payment_amount_total",
			Help: "Commission money paid out to brokers",
		}),
		assetsReleased: f.NewCounter(prometheus.CounterOpts{
			Name: "holdings_assets_released_total",
			Help: "Collateral items released on settlement",
		}),
	}
}

// CustomerPayment records one booked customer payment.
func (r *Recorder) CustomerPayment(mode, method string, settled bool, interest, principal, excess decimal.Decimal, released int) {
	r.customerPayment.WithLabelValues(mode, method, strconv.FormatBool(settled)).Inc()
	r.customerAmount.WithLabelValues("interest").Add(interest.InexactFloat64())
	r.customerAmount.WithLabelValues("principal").Add(principal.InexactFloat64())
	r.customerAmount.WithLabelValues("excess").Add(excess.InexactFloat64())
	r.assetsReleased.Add(float64(released))
}

// BrokerPayment records one lump broker payment.
func (r *Recorder) BrokerPayment(amount decimal.Decimal) {
	r.brokerPayments.Inc()
	r.brokerAmount.Add(amount.InexactFloat64())
}

// UnaryServerInterceptor counts and times every unary call.
func (r *Recorder) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		r.rpcDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
		r.rpcRequests.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
		return resp, err
	}
}
