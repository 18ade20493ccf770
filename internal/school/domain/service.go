package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Service mutates school subscriptions inside a caller-owned transaction.
type Service interface {
	// Extend applies a paid subscription extension and returns the new expiry.
	Extend(ctx context.Context, tx *gorm.DB, schoolID string, plan PlanName, months int) (time.Time, error)
}
