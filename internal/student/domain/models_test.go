package domain

import "testing"

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name        string
		amountDue   int64
		payment     int64
		wantApplied int64
		wantDue     int64
		wantStatus  TuitionStatus
	}{
		{"partial", 10000, 4000, 4000, 6000, TuitionPartiel},
		{"exact", 10000, 10000, 10000, 0, TuitionSolde},
		{"overpay clamps", 10000, 12000, 10000, 0, TuitionSolde},
		{"already settled", 0, 5000, 0, 0, TuitionSolde},
		{"negative treated as zero", 10000, -500, 0, 10000, TuitionPartiel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyPayment(tc.amountDue, tc.payment)
			if got.Applied != tc.wantApplied {
				t.Fatalf("applied = %d, want %d", got.Applied, tc.wantApplied)
			}
			if got.AmountDue != tc.wantDue {
				t.Fatalf("amount due = %d, want %d", got.AmountDue, tc.wantDue)
			}
			if got.Status != tc.wantStatus {
				t.Fatalf("status = %q, want %q", got.Status, tc.wantStatus)
			}
			// Applied plus remaining must always equal the original balance.
			if got.Applied+got.AmountDue != tc.amountDue {
				t.Fatalf("conservation violated: %d + %d != %d", got.Applied, got.AmountDue, tc.amountDue)
			}
			if got.AmountDue < 0 {
				t.Fatalf("amount due went negative: %d", got.AmountDue)
			}
		})
	}
}
