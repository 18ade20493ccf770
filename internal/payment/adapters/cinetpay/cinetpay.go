package cinetpay

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
	return "cinetpay"
}

func (f *Factory) NewAdapter(cfg paymentdomain.AdapterConfig) (paymentdomain.PaymentAdapter, error) {
	return &Adapter{}, nil
}

// Adapter handles CinetPay notifications: a flat payload with the reference
// in order_id. The order_id field cannot carry single underscores, which is
// why this provider's references are encoded with the double-underscore
// delimiter.
type Adapter struct{}

func (a *Adapter) Provider() string {
	return "cinetpay"
}

func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	var notification cinetpayNotification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return paymentdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(notification.OrderID) == "" {
		return paymentdomain.ErrInvalidPayload
	}
	return nil
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.PaymentEvent, error) {
	var notification cinetpayNotification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return nil, paymentdomain.ErrInvalidPayload
	}

	eventID := strings.TrimSpace(notification.TransactionID)
	if eventID == "" {
		return nil, paymentdomain.ErrInvalidEvent
	}

	reference := strings.TrimSpace(notification.OrderID)
	if reference == "" {
		return nil, paymentdomain.ErrMissingReference
	}

	outcome := paymentdomain.OutcomeFailure
	switch strings.TrimSpace(notification.Status) {
	case "SUCCESSFUL":
		outcome = paymentdomain.OutcomeSuccess
	case "PENDING", "WAITING":
		outcome = paymentdomain.OutcomePending
	}

	amount, err := notification.Amount.Int64()
	if err != nil || amount < 0 {
		if outcome == paymentdomain.OutcomeSuccess {
			return nil, paymentdomain.ErrInvalidAmount
		}
		amount = 0
	}

	return &paymentdomain.PaymentEvent{
		Provider:        "cinetpay",
		ProviderEventID: eventID,
		ReferenceID:     reference,
		Outcome:         outcome,
		AmountMinor:     amount,
		Currency:        "XOF",
		OccurredAt:      time.Now().UTC(),
		RawPayload:      payload,
	}, nil
}

type cinetpayNotification struct {
	TransactionID string     `json:"transaction_id"`
	OrderID       string     `json:"order_id"`
	Status        string     `json:"status"`
	Amount        flexAmount `json:"amount"`
	Currency      string     `json:"currency"`
}

// flexAmount accepts both numeric and quoted amounts; CinetPay is not
// consistent between payment channels.
type flexAmount struct {
	raw json.Number
}

func (f *flexAmount) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	f.raw = json.Number(trimmed)
	return nil
}

func (f flexAmount) Int64() (int64, error) {
	if f.raw == "" {
		return 0, nil
	}
	if value, err := f.raw.Int64(); err == nil {
		return value, nil
	}
	value, err := strconv.ParseFloat(f.raw.String(), 64)
	if err != nil {
		return 0, err
	}
	return int64(value), nil
}
