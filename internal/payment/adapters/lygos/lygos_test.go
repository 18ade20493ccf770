package lygos

import (
	"context"
	"errors"
	"testing"

	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
)

func TestSuccessRequiresBothTypeAndStatus(t *testing.T) {
	adapter := &Adapter{}

	tests := []struct {
		name        string
		eventType   string
		status      string
		wantOutcome paymentdomain.Outcome
	}{
		{"both complete", "checkout.session.completed", "complete", paymentdomain.OutcomeSuccess},
		{"wrong type", "checkout.session.created", "complete", paymentdomain.OutcomeFailure},
		{"wrong status", "checkout.session.completed", "open", paymentdomain.OutcomeFailure},
		{"neither", "checkout.session.created", "open", paymentdomain.OutcomeFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := `{"id":"evt_1","type":"` + tc.eventType + `","data":{"id":"ses_1","status":"` + tc.status + `","amount":25000,"currency":"XOF","client_reference":"subscription_sch1_Pro_1m_1690000000000"}}`

			event, err := adapter.Parse(context.Background(), []byte(payload))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if event.Outcome != tc.wantOutcome {
				t.Fatalf("outcome = %q, want %q", event.Outcome, tc.wantOutcome)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	adapter := &Adapter{}
	payload := `{"id":"evt_9","type":"checkout.session.completed","data":{"id":"ses_9","status":"complete","amount":25000,"currency":"XOF","client_reference":"ref_x"}}`

	event, err := adapter.Parse(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.ProviderEventID != "evt_9" {
		t.Fatalf("event id = %q", event.ProviderEventID)
	}
	if event.ReferenceID != "ref_x" {
		t.Fatalf("reference = %q", event.ReferenceID)
	}
	if event.AmountMinor != 25000 {
		t.Fatalf("amount = %d", event.AmountMinor)
	}
}

func TestParseMissingReference(t *testing.T) {
	adapter := &Adapter{}
	payload := `{"id":"evt_9","type":"checkout.session.completed","data":{"id":"ses_9","status":"complete","amount":25000}}`

	if _, err := adapter.Parse(context.Background(), []byte(payload)); !errors.Is(err, paymentdomain.ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
}

func TestEventIDFallsBackToSession(t *testing.T) {
	adapter := &Adapter{}
	payload := `{"type":"checkout.session.completed","data":{"id":"ses_9","status":"complete","amount":25000,"client_reference":"ref_x"}}`

	event, err := adapter.Parse(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.ProviderEventID != "ses_9" {
		t.Fatalf("event id = %q, want ses_9", event.ProviderEventID)
	}
}
