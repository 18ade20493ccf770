package reference

import (
	"errors"
	"testing"
	"time"
)

func TestRoundTripTuition(t *testing.T) {
	issuedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	raw, err := EncodeTuition("_", "sch01", "stu9", 5000, issuedAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(raw, "_")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.PaymentType != TypeTuition {
		t.Fatalf("payment type = %q", decoded.PaymentType)
	}
	if decoded.SchoolID != "sch01" || decoded.StudentID != "stu9" {
		t.Fatalf("ids = %q / %q", decoded.SchoolID, decoded.StudentID)
	}
	if decoded.AmountMinor != 5000 {
		t.Fatalf("amount = %d", decoded.AmountMinor)
	}
	if !decoded.IssuedAt.Equal(issuedAt) {
		t.Fatalf("issued at = %v, want %v", decoded.IssuedAt, issuedAt)
	}
}

func TestRoundTripSubscription(t *testing.T) {
	issuedAt := time.UnixMilli(1690000000000).UTC()
	raw, err := EncodeSubscription("_", "schoolA", "Pro", 3, issuedAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(raw, "_")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.PaymentType != TypeSubscription {
		t.Fatalf("payment type = %q", decoded.PaymentType)
	}
	if decoded.PlanName != "Pro" || decoded.DurationMonths != 3 {
		t.Fatalf("plan = %q, months = %d", decoded.PlanName, decoded.DurationMonths)
	}
	if decoded.SchoolID != "schoolA" {
		t.Fatalf("school = %q", decoded.SchoolID)
	}
}

func TestDecodeTuitionLiteral(t *testing.T) {
	decoded, err := Decode("tuition_schoolA_stu1_5000_1690000000000", "_")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.SchoolID != "schoolA" || decoded.StudentID != "stu1" || decoded.AmountMinor != 5000 {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestDoubleUnderscoreDelimiter(t *testing.T) {
	issuedAt := time.UnixMilli(1690000000000).UTC()
	raw, err := EncodeSubscription("__", "schoolA", "Premium", 12, issuedAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(raw, "__")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.PlanName != "Premium" || decoded.DurationMonths != 12 {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestEncodeRejectsFieldsContainingDelimiter(t *testing.T) {
	issuedAt := time.UnixMilli(1690000000000).UTC()

	tests := []struct {
		name   string
		encode func() (string, error)
		field  string
	}{
		{"tuition school", func() (string, error) {
			return EncodeTuition("_", "sch_01", "stu9", 5000, issuedAt)
		}, "school"},
		{"tuition student", func() (string, error) {
			return EncodeTuition("_", "sch01", "stu_9", 5000, issuedAt)
		}, "student"},
		{"tuition empty school", func() (string, error) {
			return EncodeTuition("_", " ", "stu9", 5000, issuedAt)
		}, "school"},
		{"tuition non-positive amount", func() (string, error) {
			return EncodeTuition("_", "sch01", "stu9", 0, issuedAt)
		}, "amount"},
		{"subscription school", func() (string, error) {
			return EncodeSubscription("_", "sch_01", "Pro", 3, issuedAt)
		}, "school"},
		{"subscription plan", func() (string, error) {
			return EncodeSubscription("__", "schoolA", "Pro__Plus", 3, issuedAt)
		}, "plan"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.encode()
			if err == nil {
				t.Fatalf("expected encode error")
			}
			var encodeErr *EncodeError
			if !errors.As(err, &encodeErr) {
				t.Fatalf("expected *EncodeError, got %T", err)
			}
			if encodeErr.Field != tc.field {
				t.Fatalf("field = %q, want %q", encodeErr.Field, tc.field)
			}
		})
	}
}

func TestWiderDelimiterCarriesUnderscoredIDs(t *testing.T) {
	// With the cinetpay "__" delimiter, ids with single underscores are
	// legal and must round-trip intact.
	issuedAt := time.UnixMilli(1690000000000).UTC()
	raw, err := EncodeTuition("__", "sch_01", "stu_9", 5000, issuedAt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(raw, "__")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.SchoolID != "sch_01" || decoded.StudentID != "stu_9" {
		t.Fatalf("ids = %q / %q", decoded.SchoolID, decoded.StudentID)
	}
}

func TestMalformedDurationFallsBackToOneMonth(t *testing.T) {
	for _, token := range []string{"3x", "m", "0m", "-2m", "pro"} {
		raw := "subscription_schoolA_Pro_" + token + "_1690000000000"
		decoded, err := Decode(raw, "_")
		if err != nil {
			t.Fatalf("token %q: decode: %v", token, err)
		}
		if decoded.DurationMonths != 1 {
			t.Fatalf("token %q: months = %d, want 1", token, decoded.DurationMonths)
		}
	}
}

func TestDecodeErrorsNameFailingToken(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		token string
	}{
		{"unknown type", "invoice_schoolA_x_1_1690000000000", "type"},
		{"too few tokens", "tuition_schoolA_stu1", "reference"},
		{"empty school", "tuition__stu1_5000_1690000000000", "school"},
		{"empty student", "tuition_schoolA__5000_1690000000000", "student"},
		{"bad amount", "tuition_schoolA_stu1_abc_1690000000000", "amount"},
		{"negative amount", "tuition_schoolA_stu1_-5_1690000000000", "amount"},
		{"bad timestamp", "tuition_schoolA_stu1_5000_xyz", "issued_at"},
		{"empty reference", "", "reference"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw, "_")
			if err == nil {
				t.Fatalf("expected decode error")
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if decodeErr.Token != tc.token {
				t.Fatalf("token = %q, want %q", decodeErr.Token, tc.token)
			}
		})
	}
}

func TestEmptyDelimiterDefaultsToUnderscore(t *testing.T) {
	decoded, err := Decode("tuition_schoolA_stu1_5000_1690000000000", "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.StudentID != "stu1" {
		t.Fatalf("student = %q", decoded.StudentID)
	}
}
