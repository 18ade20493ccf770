// Package domain contains persistence models for schools and their subscriptions.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// PlanName identifies one of the catalog plans a school can subscribe to.
type PlanName string

const (
	PlanEssentiel PlanName = "Essentiel"
	PlanPro       PlanName = "Pro"
	PlanPremium   PlanName = "Premium"
)

// ParsePlan validates a plan token coming from a payment reference.
func ParsePlan(raw string) (PlanName, error) {
	switch PlanName(raw) {
	case PlanEssentiel, PlanPro, PlanPremium:
		return PlanName(raw), nil
	}
	return "", ErrUnknownPlan
}

// SubscriptionStatus represents lifecycle states for a school subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// Subscription is embedded in School with a subscription_ column prefix.
type Subscription struct {
	Plan    PlanName           `gorm:"type:text;not null;default:'Essentiel'"`
	Status  SubscriptionStatus `gorm:"type:text;not null;default:'trialing'"`
	StartAt *time.Time         `gorm:""`
	EndAt   *time.Time         `gorm:""`
}

// School is the tenant root. TotalTuitionDue is the sum of all students'
// outstanding tuition and is adjusted in the same transaction as every
// tuition mutation.
type School struct {
	ID               string                       `gorm:"primaryKey;type:text"`
	Name             string                       `gorm:"type:text;not null"`
	Subscription     Subscription                 `gorm:"embedded;embeddedPrefix:subscription_"`
	ActiveModules    datatypes.JSONSlice[string]  `gorm:"type:jsonb"`
	StorageUsedBytes int64                        `gorm:"not null;default:0"`
	TotalTuitionDue  int64                        `gorm:"not null;default:0"`
	CreatedAt        time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time                    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (School) TableName() string { return "schools" }

// Cycle is an academic billing cycle (classe/niveau grouping) a school runs.
type Cycle struct {
	ID        int64     `gorm:"primaryKey"`
	SchoolID  string    `gorm:"type:text;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Cycle) TableName() string { return "school_cycles" }
