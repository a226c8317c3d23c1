package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/application/dto"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/model"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/port"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/events"
)

// OriginateInvestmentUseCase lends money to a customer against their assets.
type OriginateInvestmentUseCase struct {
	customers   port.CustomerRepository
	brokers     port.BrokerRepository
	assets      port.AssetRepository
	investments port.InvestmentRepository
	publisher   port.EventPublisher
	clock       port.Clock
}

// NewOriginateInvestmentUseCase wires dependencies.
func NewOriginateInvestmentUseCase(
	customers port.CustomerRepository,
	brokers port.BrokerRepository,
	assets port.AssetRepository,
	investments port.InvestmentRepository,
	publisher port.EventPublisher,
	clock port.Clock,
) *OriginateInvestmentUseCase {
	return &OriginateInvestmentUseCase{
		customers:   customers,
		brokers:     brokers,
		assets:      assets,
		investments: investments,
		publisher:   publisher,
		clock:       clock,
	}
}

// Execute originates a new investment.
func (uc *OriginateInvestmentUseCase) Execute(
	ctx context.Context,
	req dto.OriginateInvestmentRequest,
) (resp dto.InvestmentResponse, err error) {
	ctx, span := tracer.Start(ctx, "OriginateInvestment")
	defer func() { endSpan(span, err) }()

	now := uc.clock.Now()

	// 1. Validate the request.
	customerNIC, err := parseNIC(req.CustomerNIC, "customer")
	if err != nil {
		return dto.InvestmentResponse{}, err
	}
	brokerNIC, err := parseNIC(req.BrokerNIC, "broker")
	if err != nil {
		return dto.InvestmentResponse{}, err
	}
	assetIDs, err := uniqueAssetIDs(req.AssetIDs)
	if err != nil {
		return dto.InvestmentResponse{}, err
	}

	// 2. Resolve customer and broker.
	customer, err := uc.customers.FindByNIC(ctx, customerNIC)
	if err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("find customer: %w", err)
	}
	broker, err := uc.brokers.FindByNIC(ctx, brokerNIC)
	if err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("find broker: %w", err)
	}

	// 3. Every asset must exist and belong to the customer.
	assets, err := uc.assets.FindByIDs(ctx, assetIDs)
	if err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("find assets: %w", err)
	}
	if len(assets) != len(assetIDs) {
		return dto.InvestmentResponse{}, fmt.Errorf("find assets: %w: %d of %d assets exist",
			valueobject.ErrNotFound, len(assets), len(assetIDs))
	}
	for _, a := range assets {
		if !a.OwnedBy(customer.ID()) {
			return dto.InvestmentResponse{}, fmt.Errorf("%w: asset %s does not belong to customer %s",
				valueobject.ErrConsistency, a.ID(), customer.NIC())
		}
		if a.IsReleased() {
			return dto.InvestmentResponse{}, fmt.Errorf("%w: asset %s has already been released",
				valueobject.ErrConsistency, a.ID())
		}
	}

	// 4. Create the aggregate.
	inv, err := model.NewInvestment(
		customer.ID(), broker.ID(), assetIDs,
		req.Principal, req.InterestRate, req.CommissionRate,
		req.StartDate, now,
	)
	if err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("create investment: %w", err)
	}

	// 5. Persist.
	if err := uc.investments.Save(ctx, inv); err != nil {
		return dto.InvestmentResponse{}, fmt.Errorf("save investment: %w", err)
	}

	// 6. Publish events.
	collector := &events.EventCollector{}
	collector.Record(inv.DomainEvents()...)
	publishCommitted(ctx, uc.publisher, collector)

	span.SetAttributes(attribute.String("investment.id", inv.ID()))
	slog.InfoContext(ctx, "investment originated",
		"investment_id", inv.ID(),
		"customer_id", customer.ID(),
		"broker_id", broker.ID(),
		"principal", inv.Principal().String(),
	)

	return toInvestmentResponse(inv), nil
}

func uniqueAssetIDs(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: investment must be secured by at least one asset", valueobject.ErrConsistency)
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, id := range raw {
		id, err := parseID(id, "asset")
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
