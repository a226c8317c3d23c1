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

// RecordCustomerPaymentUseCase books a customer payment against an
// investment and releases the collateral once the investment settles.
type RecordCustomerPaymentUseCase struct {
	customers   port.CustomerRepository
	brokers     port.BrokerRepository
	assets      port.AssetRepository
	investments port.InvestmentRepository
	ledger      port.CustomerPaymentLedger
	tx          port.TransactionManager
	allocator   *service.PaymentAllocator
	publisher   port.EventPublisher
	clock       port.Clock
}

// NewRecordCustomerPaymentUseCase wires dependencies.
func NewRecordCustomerPaymentUseCase(
	customers port.CustomerRepository,
	brokers port.BrokerRepository,
	assets port.AssetRepository,
	investments port.InvestmentRepository,
	ledger port.CustomerPaymentLedger,
	tx port.TransactionManager,
	allocator *service.PaymentAllocator,
	publisher port.EventPublisher,
	clock port.Clock,
) *RecordCustomerPaymentUseCase {
	return &RecordCustomerPaymentUseCase{
		customers:   customers,
		brokers:     brokers,
		assets:      assets,
		investments: investments,
		ledger:      ledger,
		tx:          tx,
		allocator:   allocator,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute validates every precondition, then saves the investment, appends
// the ledger entry and releases settled collateral in one transaction.
func (uc *RecordCustomerPaymentUseCase) Execute(
	ctx context.Context,
	req dto.RecordCustomerPaymentRequest,
) (resp dto.CustomerPaymentResponse, err error) {
	ctx, span := tracer.Start(ctx, "RecordCustomerPayment")
	defer func() { endSpan(span, err) }()

	now := uc.clock.Now()

	// 1. Validate the request.
	investmentID, err := parseID(req.InvestmentID, "investment")
	if err != nil {
		return dto.CustomerPaymentResponse{}, err
	}
	customerNIC, err := parseNIC(req.CustomerNIC, "customer")
	if err != nil {
		return dto.CustomerPaymentResponse{}, err
	}
	brokerNIC, err := parseNIC(req.BrokerNIC, "broker")
	if err != nil {
		return dto.CustomerPaymentResponse{}, err
	}
	if !req.Amount.IsPositive() {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("%w: payment amount must be positive", valueobject.ErrValidation)
	}
	mode, err := valueobject.NewAllocationMode(req.Mode)
	if err != nil {
		return dto.CustomerPaymentResponse{}, err
	}
	method, err := valueobject.NewPaymentMethod(req.Method)
	if err != nil {
		return dto.CustomerPaymentResponse{}, err
	}

	// 2. Resolve customer, broker and investment.
	customer, err := uc.customers.FindByNIC(ctx, customerNIC)
	if err != nil {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("find customer: %w", err)
	}
	broker, err := uc.brokers.FindByNIC(ctx, brokerNIC)
	if err != nil {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("find broker: %w", err)
	}
	inv, err := uc.investments.FindByID(ctx, investmentID)
	if err != nil {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("find investment: %w", err)
	}
	if !inv.BelongsTo(customer.ID(), broker.ID()) {
		return dto.CustomerPaymentResponse{}, fmt.Errorf(
			"%w: investment %s does not belong to customer %s through broker %s",
			valueobject.ErrConsistency, inv.ID(), customer.NIC(), broker.NIC())
	}

	// 3. The investment must be backed by stored collateral.
	backing, err := uc.assets.FindByIDs(ctx, inv.AssetIDs())
	if err != nil {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("find assets: %w", err)
	}
	if len(backing) == 0 {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("%w: investment %s has no backing assets",
			valueobject.ErrConsistency, inv.ID())
	}

	// 4. Allocate.
	alloc, err := uc.allocator.Allocate(inv, req.Amount, mode, now)
	if err != nil {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("allocate payment: %w", err)
	}
	payment, err := model.NewCustomerPayment(
		alloc.Investment, req.Amount,
		alloc.InterestPart, alloc.PrincipalPart, alloc.ExcessAmount,
		mode, method, req.Note, now,
	)
	if err != nil {
		return dto.CustomerPaymentResponse{}, fmt.Errorf("create ledger entry: %w", err)
	}

	// 5. Persist in one unit of work.
	collector := &events.EventCollector{}
	var released []string
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		collector.ClearEvents()
		released = released[:0]

		if err := uc.investments.Save(ctx, alloc.Investment); err != nil {
			return fmt.Errorf("save investment: %w", err)
		}
		if err := uc.ledger.Append(ctx, payment); err != nil {
			return fmt.Errorf("append payment: %w", err)
		}
		collector.Record(alloc.Investment.DomainEvents()...)
		collector.Record(payment.DomainEvents()...)

		if !alloc.Settled {
			return nil
		}
		note := fmt.Sprintf("released on settlement by payment %s", payment.ID())
		for _, a := range backing {
			if a.IsReleased() {
				continue
			}
			next := a.Release(inv.ID(), note, now)
			if err := uc.assets.Save(ctx, next); err != nil {
				return fmt.Errorf("release asset %s: %w", a.ID(), err)
			}
			collector.Record(next.DomainEvents()...)
			released = append(released, a.ID())
		}
		return nil
	})
	if err != nil {
		return dto.CustomerPaymentResponse{}, err
	}

	// 6. Publish events.
	publishCommitted(ctx, uc.publisher, collector)

	span.SetAttributes(
		attribute.String("investment.id", inv.ID()),
		attribute.Bool("investment.settled", alloc.Settled),
	)
	slog.InfoContext(ctx, "customer payment recorded",
		"payment_id", payment.ID(),
		"investment_id", inv.ID(),
		"amount", req.Amount.String(),
		"interest_part", alloc.InterestPart.String(),
		"principal_part", alloc.PrincipalPart.String(),
		"excess", alloc.ExcessAmount.String(),
		"settled", alloc.Settled,
	)

	after := alloc.Investment
	return dto.CustomerPaymentResponse{
		PaymentID:           payment.ID(),
		InvestmentID:        after.ID(),
		Amount:              money.Round2(req.Amount),
		InterestOutstanding: money.Round2(alloc.InterestOutstanding),
		InterestPart:        money.Round2(alloc.InterestPart),
		PrincipalPart:       money.Round2(alloc.PrincipalPart),
		ExcessAmount:        money.Round2(alloc.ExcessAmount),
		InterestPaidTotal:   money.Round2(after.InterestPaid()),
		PrincipalPaidTotal:  money.Round2(after.PrincipalPaid()),
		TotalPaid:           money.Round2(after.TotalPaid()),
		PrincipalPending:    money.Round2(after.PrincipalPending()),
		ArrearsAfter:        money.Round2(alloc.ArrearsAfter),
		Settled:             alloc.Settled,
		ReleasedAssetIDs:    released,
		PaidAt:              now,
	}, nil
}
