// Package domain defines the canonical payment event produced by provider
// adapters and the contracts the webhook pipeline is built from.
package domain

import (
	"context"
	"net/http"
	"time"
)

// Outcome classifies what a provider notification says about a payment.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
	OutcomePending Outcome = "pending"
	OutcomeUnknown Outcome = "unknown"
)

// PaymentEvent is the canonical event parsed by adapters. Amounts are in
// minor units of the reference currency (XOF); the stripe adapter converts
// from its billing currency before emitting the event.
type PaymentEvent struct {
	Provider        string
	ProviderEventID string
	ReferenceID     string
	Outcome         Outcome
	AmountMinor     int64
	Currency        string
	OccurredAt      time.Time
	RawPayload      []byte
}

// PaymentAdapter turns one provider's webhook payload into a PaymentEvent.
// Verify runs before Parse; a verification failure is a hard rejection and
// must never be mapped to a failure outcome.
type PaymentAdapter interface {
	Provider() string
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*PaymentEvent, error)
}

// AdapterConfig carries provider-specific settings into a factory.
type AdapterConfig struct {
	Provider string
	Config   map[string]any
}

// AdapterFactory constructs an adapter for one provider.
type AdapterFactory interface {
	Provider() string
	NewAdapter(cfg AdapterConfig) (PaymentAdapter, error)
}

// Service ingests raw webhook deliveries.
type Service interface {
	IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error
}
