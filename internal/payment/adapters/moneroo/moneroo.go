package moneroo

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
)

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Provider() string {
	return "moneroo"
}

func (f *Factory) NewAdapter(cfg paymentdomain.AdapterConfig) (paymentdomain.PaymentAdapter, error) {
	return &Adapter{}, nil
}

// Adapter handles Moneroo aggregator notifications. The reference travels in
// data.custom_data.reference and the amount arrives as a decimal string.
type Adapter struct{}

func (a *Adapter) Provider() string {
	return "moneroo"
}

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	var event monerooEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return paymentdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.Data.Status) == "" {
		return paymentdomain.ErrInvalidPayload
	}
	return nil
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.PaymentEvent, error) {
	var event monerooEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}

	eventID := strings.TrimSpace(event.Data.ID)
	if eventID == "" {
		eventID = strings.TrimSpace(event.ID)
	}
	if eventID == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	reference := strings.TrimSpace(event.Data.CustomData.Reference)
	if reference == "" {
		return nil, paymentdomain.ErrMissingReference
	}

	outcome := paymentdomain.OutcomeFailure
	switch strings.TrimSpace(event.Data.Status) {
	case "completed":
		outcome = paymentdomain.OutcomeSuccess
	case "pending", "initiated":
		outcome = paymentdomain.OutcomePending
	}

	amount, err := parseAmount(event.Data.Amount)
	if err != nil && outcome == paymentdomain.OutcomeSuccess {
		return nil, paymentdomain.ErrInvalidAmount
	}

	return &paymentdomain.PaymentEvent{
		Provider:        "moneroo",
		ProviderEventID: eventID,
		ReferenceID:     reference,
		Outcome:         outcome,
		AmountMinor:     amount,
		Currency:        "XOF",
		OccurredAt:      time.Now().UTC(),
		RawPayload:      payload,
	}, nil
}

type monerooEvent struct {
	ID    string      `json:"id"`
	Event string      `json:"event"`
	Data  monerooData `json:"data"`
}

type monerooData struct {
	ID         string            `json:"id"`
	Status     string            `json:"status"`
	Amount     string            `json:"amount"`
	Currency   string            `json:"currency"`
	CustomData monerooCustomData `json:"custom_data"`
}

type monerooCustomData struct {
	Reference string `json:"reference"`
}

func parseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, paymentdomain.ErrInvalidAmount
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value <= 0 {
		return 0, paymentdomain.ErrInvalidAmount
	}
	return int64(value), nil
}
