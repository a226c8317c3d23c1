package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sharada0417/RanRevHoldings-sub000/internal/domain/event"
	pkgkafka "github.com/sharada0417/RanRevHoldings-sub000/pkg/kafka"
)

const contentTypeJSON = "application/json"

// Producer is the part of pkg/kafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// KafkaEventPublisher writes holdings events to a single topic. Messages are
// keyed by aggregate ID so an investment's history stays on one partition.
type KafkaEventPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

func NewKafkaEventPublisher(producer Producer, topic string, logger *slog.Logger) *KafkaEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaEventPublisher{producer: producer, topic: topic, logger: logger.With("topic", topic)}
}

// Publish sends events as one batch. Nothing is sent when any event fails
// to encode.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := make([]pkgkafka.Message, len(events))
	for i, evt := range events {
		msg, err := encode(evt)
		if err != nil {
			return err
		}
		batch[i] = msg
		p.logger.DebugContext(ctx, "queued event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"bytes", len(msg.Value),
		)
	}

	if err := p.producer.Publish(ctx, p.topic, batch...); err != nil {
		return fmt.Errorf("publish %d events to %s: %w", len(batch), p.topic, err)
	}
	return nil
}

func encode(evt event.DomainEvent) (pkgkafka.Message, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return pkgkafka.Message{}, fmt.Errorf("encode %s for %s: %w", evt.EventType(), evt.AggregateID(), err)
	}
	return pkgkafka.Message{
		Key:   []byte(evt.AggregateID()),
		Value: body,
		Headers: map[string]string{
			"event_id":       evt.EventID(),
			"event_type":     evt.EventType(),
			"aggregate_type": evt.AggregateType(),
			"occurred_at":    evt.OccurredAt().UTC().Format(time.RFC3339Nano),
			"content_type":   contentTypeJSON,
		},
	}, nil
}
