package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent("credit.payment.received", "contract-123", "CreditContract")
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}
	if event.EventType() != "credit.payment.received" {
		t.Errorf("unexpected event type %q", event.EventType())
	}
	if event.AggregateID() != "contract-123" {
		t.Errorf("unexpected aggregate ID %q", event.AggregateID())
	}
	if event.AggregateType() != "CreditContract" {
		t.Errorf("unexpected aggregate type %q", event.AggregateType())
	}
	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("occurredAt %v outside [%v, %v]", event.OccurredAt(), before, after)
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBaseEventMarshalsEnvelopeFields(t *testing.T) {
	event := NewBaseEvent("credit.penalty.created", "penalty-9", "CreditPenalty")

	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, field := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "occurred_at"} {
		if !strings.Contains(string(payload), field) {
			t.Errorf("payload missing %q: %s", field, payload)
		}
	}
}
