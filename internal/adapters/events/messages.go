package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
)

// Routing keys on the club exchange.
const (
	RoutingKeyPaymentStatus    = "dues.payment_status"
	RoutingKeyFinancialSummary = "finance.summary"
)

// Envelope wraps every event published by the service.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope marshals payload under the given event type.
func NewEnvelope(eventType string, occurredAt time.Time, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return json.Marshal(Envelope{Type: eventType, OccurredAt: occurredAt, Payload: raw})
}

// DecodePaymentStatusChanged reverses NewEnvelope for payment events.
func DecodePaymentStatusChanged(body []byte) (domain.PaymentStatusChanged, error) {
	var (
		env Envelope
		ev  domain.PaymentStatusChanged
	)
	if err := json.Unmarshal(body, &env); err != nil {
		return ev, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Type != RoutingKeyPaymentStatus {
		return ev, fmt.Errorf("unexpected event type %q", env.Type)
	}
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal payload: %w", err)
	}
	return ev, nil
}
