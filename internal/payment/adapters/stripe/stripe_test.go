package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_123","type":"checkout.session.completed","data":{"object":{}}}`)
	timestamp := time.Now().Unix()

	header := buildSignatureHeader(secret, payload, timestamp)
	reqHeader := http.Header{}
	reqHeader.Set("Stripe-Signature", header)

	adapter := &Adapter{webhookSecret: secret, xofRate: 655.957}
	if err := adapter.Verify(context.Background(), payload, reqHeader); err != nil {
		t.Fatalf("expected valid signature, got error: %v", err)
	}

	reqHeader.Set("Stripe-Signature", buildSignatureHeader("wrong", payload, timestamp))
	if err := adapter.Verify(context.Background(), payload, reqHeader); !errors.Is(err, paymentdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error, got %v", err)
	}

	reqHeader.Del("Stripe-Signature")
	if err := adapter.Verify(context.Background(), payload, reqHeader); !errors.Is(err, paymentdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error for missing header, got %v", err)
	}
}

func TestParseCheckoutSession(t *testing.T) {
	adapter := &Adapter{webhookSecret: "whsec_test", xofRate: 655.957}
	created := time.Now().UTC().Unix()

	tests := []struct {
		name        string
		status      string
		wantOutcome paymentdomain.Outcome
	}{
		{"paid", "paid", paymentdomain.OutcomeSuccess},
		{"unpaid", "unpaid", paymentdomain.OutcomePending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := buildEventPayload(t, "evt_1", "checkout.session.completed", created, map[string]any{
				"id":                  "cs_1",
				"payment_status":      tc.status,
				"amount_total":        3812, // 38.12 EUR
				"currency":            "eur",
				"client_reference_id": "subscription_schoolA_Pro_1m_1690000000000",
			})

			event, err := adapter.Parse(context.Background(), payload)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if event.Outcome != tc.wantOutcome {
				t.Fatalf("outcome = %q, want %q", event.Outcome, tc.wantOutcome)
			}
			if event.ProviderEventID != "evt_1" {
				t.Fatalf("event id = %q", event.ProviderEventID)
			}
			if event.ReferenceID != "subscription_schoolA_Pro_1m_1690000000000" {
				t.Fatalf("reference = %q", event.ReferenceID)
			}
			// 38.12 EUR * 655.957 = 25005.08 -> 25005 XOF
			if event.AmountMinor != 25005 {
				t.Fatalf("amount = %d, want 25005", event.AmountMinor)
			}
			if event.Currency != "XOF" {
				t.Fatalf("currency = %q", event.Currency)
			}
		})
	}
}

func TestParseIgnoresOtherEventTypes(t *testing.T) {
	adapter := &Adapter{webhookSecret: "whsec_test", xofRate: 655.957}
	payload := buildEventPayload(t, "evt_2", "invoice.paid", time.Now().Unix(), map[string]any{})

	if _, err := adapter.Parse(context.Background(), payload); !errors.Is(err, paymentdomain.ErrEventIgnored) {
		t.Fatalf("expected event ignored, got %v", err)
	}
}

func TestParseMissingReference(t *testing.T) {
	adapter := &Adapter{webhookSecret: "whsec_test", xofRate: 655.957}
	payload := buildEventPayload(t, "evt_3", "checkout.session.completed", time.Now().Unix(), map[string]any{
		"id":             "cs_3",
		"payment_status": "paid",
		"amount_total":   1000,
		"currency":       "eur",
	})

	if _, err := adapter.Parse(context.Background(), payload); !errors.Is(err, paymentdomain.ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
}

func TestFactoryRequiresSecretAndRate(t *testing.T) {
	factory := NewFactory()

	if _, err := factory.NewAdapter(paymentdomain.AdapterConfig{Config: map[string]any{"xof_rate": 655.957}}); err == nil {
		t.Fatalf("expected invalid config without secret")
	}
	if _, err := factory.NewAdapter(paymentdomain.AdapterConfig{Config: map[string]any{"webhook_secret": "whsec"}}); err == nil {
		t.Fatalf("expected invalid config without rate")
	}
	if _, err := factory.NewAdapter(paymentdomain.AdapterConfig{Config: map[string]any{
		"webhook_secret": "whsec",
		"xof_rate":       655.957,
	}}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func buildEventPayload(t *testing.T, id, eventType string, created int64, object map[string]any) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":      id,
		"type":    eventType,
		"created": created,
		"data":    map[string]any{"object": object},
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return payload
}

func buildSignatureHeader(secret string, payload []byte, timestamp int64) string {
	signedPayload := fmt.Sprintf("%d.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(signedPayload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, signature)
}
