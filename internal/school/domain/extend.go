package domain

import "time"

// ExtendSubscription returns the subscription state after a paid extension.
// The extension is anchored on the current expiry when it is still in the
// future, otherwise on now, so paying early never loses remaining time and
// paying late never backdates the new period.
func ExtendSubscription(current Subscription, plan PlanName, months int, now time.Time) (Subscription, error) {
	if months <= 0 {
		return Subscription{}, ErrInvalidMonths
	}

	anchor := now
	if current.EndAt != nil && current.EndAt.After(now) {
		anchor = *current.EndAt
	}

	startAt := now
	if current.StartAt != nil {
		startAt = *current.StartAt
	}
	if current.EndAt == nil || !current.EndAt.After(now) {
		// Lapsed or never started: the new period begins now.
		startAt = now
	}

	endAt := addMonths(anchor, months)

	return Subscription{
		Plan:    plan,
		Status:  SubscriptionStatusActive,
		StartAt: &startAt,
		EndAt:   &endAt,
	}, nil
}

// addMonths advances t by calendar months, clamping to the last day of the
// target month. time.AddDate would normalize Jan 31 + 1 month to Mar 3.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
