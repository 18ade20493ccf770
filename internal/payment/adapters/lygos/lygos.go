package lygos

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Provider() string {
	return "lygos"
}

func (f *Factory) NewAdapter(cfg paymentdomain.AdapterConfig) (paymentdomain.PaymentAdapter, error) {
	return &Adapter{}, nil
}

// Adapter handles Lygos checkout events. Success requires BOTH the envelope
// type and the nested payment status to agree; either one alone is not
// enough.
type Adapter struct{}

func (a *Adapter) Provider() string {
	return "lygos"
}

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	var event lygosEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return paymentdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.Type) == "" {
		return paymentdomain.ErrInvalidPayload
	}
	return nil
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.PaymentEvent, error) {
	var event lygosEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}

	eventID := strings.TrimSpace(event.ID)
	if eventID == "" {
		eventID = strings.TrimSpace(event.Data.ID)
	}
	if eventID == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	reference := strings.TrimSpace(event.Data.ClientReference)
	if reference == "" {
		return nil, paymentdomain.ErrMissingReference
	}

	completed := strings.TrimSpace(event.Type) == "checkout.session.completed" &&
		strings.TrimSpace(event.Data.Status) == "complete"
	outcome := paymentdomain.OutcomeFailure
	if completed {
		outcome = paymentdomain.OutcomeSuccess
	}

	return &paymentdomain.PaymentEvent{
		Provider:        "lygos",
		ProviderEventID: eventID,
		ReferenceID:     reference,
		Outcome:         outcome,
		AmountMinor:     event.Data.Amount,
		Currency:        "XOF",
		OccurredAt:      time.Now().UTC(),
		RawPayload:      payload,
	}, nil
}

type lygosEvent struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data lygosData `json:"data"`
}

type lygosData struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	ClientReference string `json:"client_reference"`
}
