package repository

import (
	"context"
	"errors"

	studentdomain "github.com/kelasi/kelasi/internal/student/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() studentdomain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, schoolID, id string) (*studentdomain.Student, error) {
	var student studentdomain.Student
	if err := db.WithContext(ctx).Where("school_id = ? AND id = ?", schoolID, id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, studentdomain.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, schoolID, id string) (*studentdomain.Student, error) {
	var student studentdomain.Student
	query := db.WithContext(ctx)
	if supportsRowLocking(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Where("school_id = ? AND id = ?", schoolID, id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, studentdomain.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *repo) UpdateTuition(ctx context.Context, db *gorm.DB, schoolID, id string, amountDue int64, status studentdomain.TuitionStatus) error {
	result := db.WithContext(ctx).Model(&studentdomain.Student{}).
		Where("school_id = ? AND id = ?", schoolID, id).
		Updates(map[string]any{
			"amount_due":     amountDue,
			"tuition_status": status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return studentdomain.ErrStudentNotFound
	}
	return nil
}

func (r *repo) CountBySchool(ctx context.Context, db *gorm.DB, schoolID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&studentdomain.Student{}).Where("school_id = ?", schoolID).Count(&count).Error
	return count, err
}

func (r *repo) SumStorageBySchool(ctx context.Context, db *gorm.DB, schoolID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&studentdomain.Student{}).
		Where("school_id = ?", schoolID).
		Select("COALESCE(SUM(storage_used_bytes), 0)").
		Scan(&total).Error
	return total, err
}

func supportsRowLocking(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "postgres", "mysql":
		return true
	}
	return false
}
