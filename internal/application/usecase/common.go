package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/port"
	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/valueobject"
	"github.com/sharada0417/RanRevHoldings-sub000/pkg/events"
)

const instrumentationScope = "github.com/sharada0417/RanRevHoldings-sub000/internal/application/usecase"

var (
	tracer = otel.Tracer(instrumentationScope)

	// Instruments created before the meter provider is installed are
	// forwarded to it once it is.
	publishFailures, _ = otel.Meter(instrumentationScope).Int64Counter(
		"holdings.events.publish_failures",
		metric.WithDescription("Committed units of work whose events could not be published"),
	)
)

// parseNIC validates a NIC supplied for the named party.
func parseNIC(raw, party string) (valueobject.NIC, error) {
	nic, err := valueobject.NewNIC(raw)
	if err != nil {
		return valueobject.NIC{}, fmt.Errorf("%s NIC: %w", party, err)
	}
	return nic, nil
}

// parseID rejects anything that is not a UUID before it reaches the store
// and returns the canonical form the store keys on.
func parseID(raw, what string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: invalid %s ID %q", valueobject.ErrValidation, what, raw)
	}
	return id.String(), nil
}

// publishCommitted hands the events of a committed unit of work to the
// publisher. The write already happened, so a publish failure is logged and
// not returned to the caller.
func publishCommitted(ctx context.Context, publisher port.EventPublisher, collector *events.EventCollector) {
	evts := collector.ClearEvents()
	if len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		publishFailures.Add(ctx, 1)
		slog.ErrorContext(ctx, "publish events failed",
			"events", len(evts),
			"error", err,
		)
	}
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
