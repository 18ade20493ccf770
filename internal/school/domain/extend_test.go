package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestExtendFromLapsedSubscription(t *testing.T) {
	now := date(2026, time.March, 10)
	ended := date(2026, time.January, 1)

	next, err := ExtendSubscription(Subscription{
		Plan:   PlanEssentiel,
		Status: SubscriptionStatusPastDue,
		EndAt:  &ended,
	}, PlanPro, 1, now)
	if err != nil {
		t.Fatalf("extend: %v", err)
	}

	if next.Status != SubscriptionStatusActive {
		t.Fatalf("status = %q", next.Status)
	}
	if next.Plan != PlanPro {
		t.Fatalf("plan = %q", next.Plan)
	}
	if !next.StartAt.Equal(now) {
		t.Fatalf("start = %v, want %v", next.StartAt, now)
	}
	if want := date(2026, time.April, 10); !next.EndAt.Equal(want) {
		t.Fatalf("end = %v, want %v", next.EndAt, want)
	}
}

func TestExtendPreservesRemainingTime(t *testing.T) {
	now := date(2026, time.March, 10)
	start := date(2026, time.February, 1)
	end := date(2026, time.April, 1)

	next, err := ExtendSubscription(Subscription{
		Plan:    PlanPro,
		Status:  SubscriptionStatusActive,
		StartAt: &start,
		EndAt:   &end,
	}, PlanPro, 3, now)
	if err != nil {
		t.Fatalf("extend: %v", err)
	}

	// Anchored on the future expiry, not on now.
	if want := date(2026, time.July, 1); !next.EndAt.Equal(want) {
		t.Fatalf("end = %v, want %v", next.EndAt, want)
	}
	if !next.StartAt.Equal(start) {
		t.Fatalf("start = %v, want unchanged %v", next.StartAt, start)
	}
}

func TestExtendNeverShortens(t *testing.T) {
	now := date(2026, time.March, 10)
	end := date(2027, time.January, 1)

	next, err := ExtendSubscription(Subscription{Plan: PlanPremium, EndAt: &end}, PlanEssentiel, 1, now)
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	if !next.EndAt.After(end) {
		t.Fatalf("end = %v, must be after previous expiry %v", next.EndAt, end)
	}
}

func TestExtendRejectsNonPositiveMonths(t *testing.T) {
	if _, err := ExtendSubscription(Subscription{}, PlanPro, 0, date(2026, time.March, 10)); err != ErrInvalidMonths {
		t.Fatalf("expected ErrInvalidMonths, got %v", err)
	}
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{"jan 31 plus one", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"jan 31 leap year", date(2028, time.January, 31), 1, date(2028, time.February, 29)},
		{"jan 31 plus two", date(2026, time.January, 31), 2, date(2026, time.March, 31)},
		{"mar 31 plus one", date(2026, time.March, 31), 1, date(2026, time.April, 30)},
		{"plain mid month", date(2026, time.June, 15), 12, date(2027, time.June, 15)},
		{"year rollover", date(2026, time.November, 30), 3, date(2027, time.February, 28)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := addMonths(tc.from, tc.months)
			if !got.Equal(tc.want) {
				t.Fatalf("addMonths(%v, %d) = %v, want %v", tc.from, tc.months, got, tc.want)
			}
		})
	}
}

func TestParsePlan(t *testing.T) {
	for _, valid := range []string{"Essentiel", "Pro", "Premium"} {
		if _, err := ParsePlan(valid); err != nil {
			t.Fatalf("ParsePlan(%q): %v", valid, err)
		}
	}
	if _, err := ParsePlan("Gold"); err != ErrUnknownPlan {
		t.Fatalf("expected ErrUnknownPlan, got %v", err)
	}
}
