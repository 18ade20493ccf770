package reconcile

import "github.com/kelasi/kelasi/internal/reference"

// Config tunes reference decoding and amount verification per deployment.
type Config struct {
	// Delimiters overrides the reference delimiter per provider. CinetPay
	// rejects order ids with single underscores, so it ships with "__".
	Delimiters map[string]string

	// DriftToleranceMinor is the accepted gap between the paid amount and
	// the amount the reference was issued for, in XOF minor units.
	DriftToleranceMinor int64

	// EnforceAmountMatch rejects drifting payments instead of reconciling
	// them with a warning. Off by default: the reference amount can be
	// legitimately stale by the time the parent pays.
	EnforceAmountMatch bool
}

func (c Config) delimiterFor(provider string) string {
	if d, ok := c.Delimiters[provider]; ok && d != "" {
		return d
	}
	return reference.DefaultDelimiter
}
