// Package reference encodes and decodes the correlation strings that payment
// providers echo back with each webhook delivery.
package reference

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Payment types carried in the first token of a reference.
const (
	TypeTuition      = "tuition"
	TypeSubscription = "subscription"
)

// DefaultDelimiter joins reference tokens. Providers whose reference field
// cannot carry a single underscore are configured with a wider delimiter.
const DefaultDelimiter = "_"

const defaultDurationMonths = 1

// Decoded is the result of parsing a reference string.
type Decoded struct {
	PaymentType    string
	SchoolID       string
	StudentID      string
	PlanName       string
	DurationMonths int
	AmountMinor    int64
	IssuedAt       time.Time
}

// DecodeError reports which token of a reference failed to parse.
type DecodeError struct {
	Token  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("reference: invalid %s token: %s", e.Token, e.Reason)
}

func decodeError(token, reason string) *DecodeError {
	return &DecodeError{Token: token, Reason: reason}
}

// EncodeError reports a field value that cannot be carried in a reference.
type EncodeError struct {
	Field  string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("reference: invalid %s field: %s", e.Field, e.Reason)
}

// checkField rejects values that would shift the token positions and break
// the decode round trip.
func checkField(delimiter, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &EncodeError{Field: field, Reason: "empty"}
	}
	if strings.Contains(value, delimiter) {
		return &EncodeError{Field: field, Reason: fmt.Sprintf("contains delimiter %q", delimiter)}
	}
	return nil
}

// EncodeTuition builds a tuition reference:
// tuition<d>schoolID<d>studentID<d>amountMinor<d>issuedAtMillis.
func EncodeTuition(delimiter, schoolID, studentID string, amountMinor int64, issuedAt time.Time) (string, error) {
	d := normalizeDelimiter(delimiter)
	if err := checkField(d, "school", schoolID); err != nil {
		return "", err
	}
	if err := checkField(d, "student", studentID); err != nil {
		return "", err
	}
	if amountMinor <= 0 {
		return "", &EncodeError{Field: "amount", Reason: "must be positive"}
	}
	return strings.Join([]string{
		TypeTuition,
		schoolID,
		studentID,
		strconv.FormatInt(amountMinor, 10),
		strconv.FormatInt(issuedAt.UnixMilli(), 10),
	}, d), nil
}

// EncodeSubscription builds a subscription reference:
// subscription<d>schoolID<d>planName<d><months>m<d>issuedAtMillis.
func EncodeSubscription(delimiter, schoolID, planName string, durationMonths int, issuedAt time.Time) (string, error) {
	d := normalizeDelimiter(delimiter)
	if err := checkField(d, "school", schoolID); err != nil {
		return "", err
	}
	if err := checkField(d, "plan", planName); err != nil {
		return "", err
	}
	if durationMonths <= 0 {
		durationMonths = defaultDurationMonths
	}
	return strings.Join([]string{
		TypeSubscription,
		schoolID,
		planName,
		strconv.Itoa(durationMonths) + "m",
		strconv.FormatInt(issuedAt.UnixMilli(), 10),
	}, d), nil
}

// Decode parses a reference string using the given delimiter. It never
// panics on malformed input; failures come back as a *DecodeError naming
// the offending token.
func Decode(raw, delimiter string) (*Decoded, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, decodeError("reference", "empty")
	}
	tokens := strings.Split(raw, normalizeDelimiter(delimiter))

	switch tokens[0] {
	case TypeTuition:
		return decodeTuition(tokens)
	case TypeSubscription:
		return decodeSubscription(tokens)
	default:
		return nil, decodeError("type", fmt.Sprintf("unknown payment type %q", tokens[0]))
	}
}

func decodeTuition(tokens []string) (*Decoded, error) {
	if len(tokens) < 5 {
		return nil, decodeError("reference", fmt.Sprintf("expected 5 tokens, got %d", len(tokens)))
	}
	schoolID := tokens[1]
	if schoolID == "" {
		return nil, decodeError("school", "empty")
	}
	studentID := tokens[2]
	if studentID == "" {
		return nil, decodeError("student", "empty")
	}
	amount, err := parsePositiveInt(tokens[3])
	if err != nil {
		return nil, decodeError("amount", fmt.Sprintf("%q is not a positive integer", tokens[3]))
	}
	issuedAt, err := parseIssuedAt(tokens[4])
	if err != nil {
		return nil, decodeError("issued_at", fmt.Sprintf("%q is not an epoch timestamp", tokens[4]))
	}
	return &Decoded{
		PaymentType: TypeTuition,
		SchoolID:    schoolID,
		StudentID:   studentID,
		AmountMinor: amount,
		IssuedAt:    issuedAt,
	}, nil
}

func decodeSubscription(tokens []string) (*Decoded, error) {
	if len(tokens) < 5 {
		return nil, decodeError("reference", fmt.Sprintf("expected 5 tokens, got %d", len(tokens)))
	}
	schoolID := tokens[1]
	if schoolID == "" {
		return nil, decodeError("school", "empty")
	}
	planName := tokens[2]
	if planName == "" {
		return nil, decodeError("plan", "empty")
	}
	issuedAt, err := parseIssuedAt(tokens[4])
	if err != nil {
		return nil, decodeError("issued_at", fmt.Sprintf("%q is not an epoch timestamp", tokens[4]))
	}
	return &Decoded{
		PaymentType:    TypeSubscription,
		SchoolID:       schoolID,
		PlanName:       planName,
		DurationMonths: parseDurationMonths(tokens[3]),
		IssuedAt:       issuedAt,
	}, nil
}

// parseDurationMonths reads an "<n>m" token. Malformed tokens fall back to
// one month rather than failing the whole decode; the duration was chosen by
// our own checkout flow, so a bad token means a display bug, not fraud.
func parseDurationMonths(token string) int {
	trimmed, ok := strings.CutSuffix(token, "m")
	if !ok {
		return defaultDurationMonths
	}
	months, err := strconv.Atoi(trimmed)
	if err != nil || months <= 0 {
		return defaultDurationMonths
	}
	return months
}

func parsePositiveInt(token string) (int64, error) {
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("non-positive value %d", value)
	}
	return value, nil
}

func parseIssuedAt(token string) (time.Time, error) {
	millis, err := parsePositiveInt(token)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(millis).UTC(), nil
}

func normalizeDelimiter(delimiter string) string {
	if delimiter == "" {
		return DefaultDelimiter
	}
	return delimiter
}
