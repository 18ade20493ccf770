// Package domain contains the processed-event marker that makes webhook
// reconciliation idempotent.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProcessedEvent records a provider event that has been reconciled. The
// unique (provider, provider_event_id) index is the idempotency guarantee:
// the marker insert and the business mutation commit in one transaction.
type ProcessedEvent struct {
	ID              snowflake.ID   `gorm:"primaryKey"`
	Provider        string         `gorm:"type:text;not null;uniqueIndex:idx_processed_provider_event"`
	ProviderEventID string         `gorm:"type:text;not null;uniqueIndex:idx_processed_provider_event"`
	ReferenceID     string         `gorm:"type:text;not null;index"`
	Outcome         string         `gorm:"type:text;not null"`
	Payload         datatypes.JSON `gorm:"type:jsonb"`
	ProcessedAt     time.Time      `gorm:"not null"`
}

// TableName sets the database table name.
func (ProcessedEvent) TableName() string { return "processed_payment_events" }

type Repository interface {
	// Insert reports true when this is the first delivery of the event.
	Insert(ctx context.Context, db *gorm.DB, event *ProcessedEvent) (bool, error)
}
