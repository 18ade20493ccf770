package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*School, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id string) (*School, error)
	UpdateSubscription(ctx context.Context, db *gorm.DB, id string, sub Subscription) error
	AdjustTotalTuitionDue(ctx context.Context, db *gorm.DB, id string, delta int64) error
	CountCycles(ctx context.Context, db *gorm.DB, id string) (int64, error)

	// MarkLapsedPastDue flips active and trialing subscriptions whose end
	// date has passed to past_due and returns how many rows changed.
	MarkLapsedPastDue(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
