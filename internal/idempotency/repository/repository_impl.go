package repository

import (
	"context"

	idempotencydomain "github.com/kelasi/kelasi/internal/idempotency/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() idempotencydomain.Repository {
	return &repo{}
}

// Insert relies on the unique (provider, provider_event_id) index. A
// conflicting row means the event was already processed; RowsAffected
// distinguishes the first delivery from a redelivery.
func (r *repo) Insert(ctx context.Context, db *gorm.DB, event *idempotencydomain.ProcessedEvent) (bool, error) {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_event_id"}},
		DoNothing: true,
	}).Create(event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
