package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	at := time.Date(2026, time.February, 2, 9, 30, 0, 0, time.FixedZone("LKT", 5*3600+1800))

	event := NewBaseEvent("holdings.investment.originated", "inv-123", "Investment", at)

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "holdings.investment.originated" {
		t.Errorf("expected event type %q, got %q", "holdings.investment.originated", event.EventType())
	}
	if event.AggregateID() != "inv-123" {
		t.Errorf("expected aggregate ID %q, got %q", "inv-123", event.AggregateID())
	}
	if event.AggregateType() != "Investment" {
		t.Errorf("expected aggregate type %q, got %q", "Investment", event.AggregateType())
	}
	if !event.OccurredAt().Equal(at) {
		t.Errorf("expected occurredAt %v, got %v", at, event.OccurredAt())
	}
	if event.OccurredAt().Location() != time.UTC {
		t.Errorf("expected occurredAt in UTC, got %v", event.OccurredAt().Location())
	}
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	at := time.Now()
	a := NewBaseEvent("E", "agg", "Aggregate", at)
	b := NewBaseEvent("E", "agg", "Aggregate", at)
	if a.EventID() == b.EventID() {
		t.Error("expected distinct event IDs")
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBaseEvent_EmbeddedJSON(t *testing.T) {
	type paymentRecorded struct {
		BaseEvent
		Amount string `json:"amount"`
	}
	evt := paymentRecorded{
		BaseEvent: NewBaseEvent("holdings.customer_payment.recorded", "inv-1", "Investment", time.Now()),
		Amount:    "1500.00",
	}

	raw, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "occurred_at", "amount"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("expected key %q in %s", key, raw)
		}
	}
}

func TestEventCollectorRecord(t *testing.T) {
	collector := &EventCollector{}
	now := time.Now()

	e1 := NewBaseEvent("Event1", "agg", "Aggregate", now)
	e2 := NewBaseEvent("Event2", "agg", "Aggregate", now)
	e3 := NewBaseEvent("Event3", "agg", "Aggregate", now)

	collector.Record(e1)
	collector.Record(e2, e3)

	events := collector.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].EventType() != "Event1" || events[2].EventType() != "Event3" {
		t.Errorf("unexpected ordering: %v", events)
	}
}

func TestEventCollectorRecordNothing(t *testing.T) {
	collector := &EventCollector{}
	collector.Record()
	if len(collector.Events()) != 0 {
		t.Error("expected no events")
	}
}

func TestEventCollectorEventsDoesNotClear(t *testing.T) {
	collector := &EventCollector{}
	collector.Record(NewBaseEvent("Event1", "agg", "Aggregate", time.Now()))

	_ = collector.Events()

	if len(collector.Events()) != 1 {
		t.Error("expected Events() to not clear the internal slice")
	}
}

func TestEventCollectorClearEvents(t *testing.T) {
	collector := &EventCollector{}

	collector.Record(NewBaseEvent("Event1", "agg", "Aggregate", time.Now()))
	collector.Record(NewBaseEvent("Event2", "agg", "Aggregate", time.Now()))

	cleared := collector.ClearEvents()

	if len(cleared) != 2 {
		t.Fatalf("expected ClearEvents to return 2 events, got %d", len(cleared))
	}
	if len(collector.Events()) != 0 {
		t.Errorf("expected internal slice to be empty after ClearEvents, got %d events", len(collector.Events()))
	}
}

func TestEventCollectorClearEventsOnEmpty(t *testing.T) {
	collector := &EventCollector{}

	cleared := collector.ClearEvents()

	if cleared != nil {
		t.Errorf("expected nil from ClearEvents on empty collector, got %v", cleared)
	}
}
