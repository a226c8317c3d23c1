package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/port"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/service"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/events"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/money"
)

// PayBrokerUseCase pays a broker a lump sum against unlocked commission.
type PayBrokerUseCase struct {
	brokers     port.BrokerRepository
	investments port.InvestmentRepository
	ledger      port.BrokerPaymentLedger
	tx          port.TransactionManager
	commission  *service.CommissionEngine
	publisher   port.EventPublisher
	clock       port.Clock
}

// NewPayBrokerUseCase wires dependencies.
func NewPayBrokerUseCase(
	brokers port.BrokerRepository,
	investments port.InvestmentRepository,
	ledger port.BrokerPaymentLedger,
	tx port.TransactionManager,
	commission *service.CommissionEngine,
	publisher port.EventPublisher,
	clock port.Clock,
) *PayBrokerUseCase {
	return &PayBrokerUseCase{
		brokers:     brokers,
		investments: investments,
		ledger:      ledger,
		tx:          tx,
		commission:  commission,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute allocates the payment oldest-first and persists the updated
// investments together with one ledger entry.
func (uc *PayBrokerUseCase) Execute(
	ctx context.Context,
	req dto.PayBrokerRequest,
) (resp dto.BrokerPaymentResponse, err error) {
	ctx, span := tracer.Start(ctx, "PayBroker")
	defer func() { endSpan(span, err) }()

	now := uc.clock.Now()

	// 1. Validate the request.
	nic, err := parseNIC(req.BrokerNIC, "broker")
	if err != nil {
		return dto.BrokerPaymentResponse{}, err
	}
	if !req.Amount.IsPositive() {
		return dto.BrokerPaymentResponse{}, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}

	// 2. Resolve the broker and their book.
	broker, err := uc.brokers.FindByNIC(ctx, nic)
	if err != nil {
		return dto.BrokerPaymentResponse{}, fmt.Errorf("find broker: %w", err)
	}
	invs, err := uc.investments.FindByBrokerID(ctx, broker.ID())
	if err != nil {
		return dto.BrokerPaymentResponse{}, fmt.Errorf("find investments: %w", err)
	}

	// 3. Allocate.
	result, err := uc.commission.Allocate(invs, req.Amount, now)
	if err != nil {
		return dto.BrokerPaymentResponse{}, fmt.Errorf("allocate commission: %w", err)
	}
	payment, err := model.NewBrokerPayment(broker.ID(), req.Amount, result.Allocations, req.Note, now)
	if err != nil {
		return dto.BrokerPaymentResponse{}, fmt.Errorf("create ledger entry: %w", err)
	}

	// 4. Persist in one unit of work.
	collector := &events.EventCollector{}
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		collector.ClearEvents()
		for _, inv := range result.Investments {
			if err := uc.investments.Save(ctx, inv); err != nil {
				return fmt.Errorf("save investment %s: %w", inv.ID(), err)
			}
			collector.Record(inv.DomainEvents()...)
		}
		if err := uc.ledger.Append(ctx, payment); err != nil {
			return fmt.Errorf("append broker payment: %w", err)
		}
		collector.Record(payment.DomainEvents()...)
		return nil
	})
	if err != nil {
		return dto.BrokerPaymentResponse{}, err
	}

	// 5. Publish events.
	publishCommitted(ctx, uc.publisher, collector)

	span.SetAttributes(
		attribute.String("broker.id", broker.ID()),
		attribute.Int("allocations", len(result.Allocations)),
	)
	slog.InfoContext(ctx, "broker paid",
		"payment_id", payment.ID(),
		"broker_id", broker.ID(),
		"amount", req.Amount.String(),
		"allocations", len(result.Allocations),
	)

	return dto.BrokerPaymentResponse{
		PaymentID:    payment.ID(),
		BrokerID:     broker.ID(),
		Amount:       money.Round2(req.Amount),
		PendingTotal: money.Round2(result.PendingTotal),
		PendingAfter: money.Round2(result.PendingTotal.Sub(req.Amount)),
		Allocations:  toBrokerAllocationResponses(result.Allocations),
		PaidAt:       now,
	}, nil
}
