package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, schoolID, id string) (*Student, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, schoolID, id string) (*Student, error)
	UpdateTuition(ctx context.Context, db *gorm.DB, schoolID, id string, amountDue int64, status TuitionStatus) error
	CountBySchool(ctx context.Context, db *gorm.DB, schoolID string) (int64, error)
	SumStorageBySchool(ctx context.Context, db *gorm.DB, schoolID string) (int64, error)
}
