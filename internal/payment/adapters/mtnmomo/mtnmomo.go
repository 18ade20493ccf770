package mtnmomo

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
	return "mtnmomo"
}

func (f *Factory) NewAdapter(cfg paymentdomain.AdapterConfig) (paymentdomain.PaymentAdapter, error) {
	return &Adapter{}, nil
}

// Adapter handles MTN Mobile Money request-to-pay callbacks. The provider
// signs nothing; a delivery is accepted when the required fields are present.
// Non-successful statuses still map to a failure outcome so the caller can
// acknowledge them — MTN does not retry on rejection, only on transport
// failure.
type Adapter struct{}

func (a *Adapter) Provider() string {
	return "mtnmomo"
}

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	var callback momoCallback
	if err := json.Unmarshal(payload, &callback); err != nil {
		return paymentdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(callback.Status) == "" {
		return paymentdomain.ErrInvalidPayload
	}
	return nil
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.PaymentEvent, error) {
	var callback momoCallback
	if err := json.Unmarshal(payload, &callback); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}

	eventID := strings.TrimSpace(callback.FinancialTransactionID)
	if eventID == "" {
		eventID = strings.TrimSpace(callback.ExternalID)
	}
	if eventID == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	reference := strings.TrimSpace(callback.ExternalID)
	if reference == "" {
		return nil, paymentdomain.ErrMissingReference
	}

	outcome := paymentdomain.OutcomeFailure
	if strings.TrimSpace(callback.Status) == "SUCCESSFUL" {
		outcome = paymentdomain.OutcomeSuccess
	}

	amount, err := parseAmount(callback.Amount)
	if err != nil && outcome == paymentdomain.OutcomeSuccess {
		return nil, paymentdomain.ErrInvalidAmount
	}

	return &paymentdomain.PaymentEvent{
		Provider:        "mtnmomo",
		ProviderEventID: eventID,
		ReferenceID:     reference,
		Outcome:         outcome,
		AmountMinor:     amount,
		Currency:        "XOF",
		OccurredAt:      time.Now().UTC(),
		RawPayload:      payload,
	}, nil
}

type momoCallback struct {
	FinancialTransactionID string `json:"financialTransactionId"`
	ExternalID             string `json:"externalId"`
	Amount                 string `json:"amount"`
	Currency               string `json:"currency"`
	Status                 string `json:"status"`
	Reason                 string `json:"reason"`
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
