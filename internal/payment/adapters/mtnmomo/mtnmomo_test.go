package mtnmomo

import (
	"context"
	"errors"
	"testing"

	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
)

func TestParseOutcomes(t *testing.T) {
	adapter := &Adapter{}

	tests := []struct {
		name        string
		payload     string
		wantOutcome paymentdomain.Outcome
	}{{
		name:        "successful",
		payload:     `{"financialTransactionId":"ft_1","externalId":"tuition_sch1_stu1_5000_1690000000000","amount":"5000","currency":"XOF","status":"SUCCESSFUL"}`,
		wantOutcome: paymentdomain.OutcomeSuccess,
	}, {
		name:        "failed",
		payload:     `{"financialTransactionId":"ft_2","externalId":"tuition_sch1_stu1_5000_1690000000000","amount":"5000","currency":"XOF","status":"FAILED","reason":"PAYER_NOT_FOUND"}`,
		wantOutcome: paymentdomain.OutcomeFailure,
	}, {
		name:        "rejected maps to failure not error",
		payload:     `{"financialTransactionId":"ft_3","externalId":"tuition_sch1_stu1_5000_1690000000000","amount":"5000","currency":"XOF","status":"REJECTED"}`,
		wantOutcome: paymentdomain.OutcomeFailure,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			event, err := adapter.Parse(context.Background(), []byte(tc.payload))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if event.Outcome != tc.wantOutcome {
				t.Fatalf("outcome = %q, want %q", event.Outcome, tc.wantOutcome)
			}
			if event.ReferenceID != "tuition_sch1_stu1_5000_1690000000000" {
				t.Fatalf("reference = %q", event.ReferenceID)
			}
		})
	}
}

func TestParseSuccessfulAmount(t *testing.T) {
	adapter := &Adapter{}
	payload := `{"financialTransactionId":"ft_1","externalId":"ref","amount":"7500","currency":"XOF","status":"SUCCESSFUL"}`

	event, err := adapter.Parse(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.AmountMinor != 7500 {
		t.Fatalf("amount = %d, want 7500", event.AmountMinor)
	}
	if event.ProviderEventID != "ft_1" {
		t.Fatalf("event id = %q", event.ProviderEventID)
	}
}

func TestParseSuccessWithBadAmountFails(t *testing.T) {
	adapter := &Adapter{}
	payload := `{"financialTransactionId":"ft_1","externalId":"ref","amount":"??","currency":"XOF","status":"SUCCESSFUL"}`

	if _, err := adapter.Parse(context.Background(), []byte(payload)); !errors.Is(err, paymentdomain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestParseMissingExternalID(t *testing.T) {
	adapter := &Adapter{}
	payload := `{"financialTransactionId":"ft_1","amount":"5000","status":"SUCCESSFUL"}`

	if _, err := adapter.Parse(context.Background(), []byte(payload)); !errors.Is(err, paymentdomain.ErrMissingReference) {
		t.Fatalf("expected missing reference, got %v", err)
	}
}

func TestVerifyRequiresStatus(t *testing.T) {
	adapter := &Adapter{}

	if err := adapter.Verify(context.Background(), []byte(`{"externalId":"ref"}`), nil); !errors.Is(err, paymentdomain.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}
	if err := adapter.Verify(context.Background(), []byte(`not json`), nil); !errors.Is(err, paymentdomain.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload for bad json, got %v", err)
	}
}
