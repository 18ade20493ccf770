package repository

import (
	"context"
	"errors"
	"time"

	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() schooldomain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*schooldomain.School, error) {
	var school schooldomain.School
	if err := db.WithContext(ctx).Where("id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schooldomain.ErrSchoolNotFound
		}
		return nil, err
	}
	return &school, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id string) (*schooldomain.School, error) {
	var school schooldomain.School
	query := db.WithContext(ctx)
	if supportsRowLocking(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Where("id = ?", id).First(&school).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schooldomain.ErrSchoolNotFound
		}
		return nil, err
	}
	return &school, nil
}

func (r *repo) UpdateSubscription(ctx context.Context, db *gorm.DB, id string, sub schooldomain.Subscription) error {
	result := db.WithContext(ctx).Model(&schooldomain.School{}).Where("id = ?", id).Updates(map[string]any{
		"subscription_plan":     sub.Plan,
		"subscription_status":   sub.Status,
		"subscription_start_at": sub.StartAt,
		"subscription_end_at":   sub.EndAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return schooldomain.ErrSchoolNotFound
	}
	return nil
}

func (r *repo) AdjustTotalTuitionDue(ctx context.Context, db *gorm.DB, id string, delta int64) error {
	result := db.WithContext(ctx).Model(&schooldomain.School{}).Where("id = ?", id).
		Update("total_tuition_due", gorm.Expr("total_tuition_due + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return schooldomain.ErrSchoolNotFound
	}
	return nil
}

func (r *repo) CountCycles(ctx context.Context, db *gorm.DB, id string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&schooldomain.Cycle{}).Where("school_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repo) MarkLapsedPastDue(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.WithContext(ctx).Model(&schooldomain.School{}).
		Where("subscription_status IN ?", []schooldomain.SubscriptionStatus{
			schooldomain.SubscriptionStatusActive,
			schooldomain.SubscriptionStatusTrialing,
		}).
		Where("subscription_end_at IS NOT NULL AND subscription_end_at < ?", cutoff).
		Update("subscription_status", schooldomain.SubscriptionStatusPastDue)
	return result.RowsAffected, result.Error
}

// sqlite has no FOR UPDATE; its writes are serialized at the file level.
func supportsRowLocking(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	}
	return false
}
