// Package usage measures a school's current consumption for billing.
package usage

import (
	"context"

	"github.com/kelasi/kelasi/internal/billing"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	studentdomain "github.com/kelasi/kelasi/internal/student/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Provider interface {
	CurrentUsage(ctx context.Context, schoolID string) (billing.Usage, error)
}

type provider struct {
	db          *gorm.DB
	schoolRepo  schooldomain.Repository
	studentRepo studentdomain.Repository
}

type ProviderParam struct {
	fx.In

	DB          *gorm.DB
	SchoolRepo  schooldomain.Repository
	StudentRepo studentdomain.Repository
}

func NewProvider(p ProviderParam) Provider {
	return &provider{db: p.DB, schoolRepo: p.SchoolRepo, studentRepo: p.StudentRepo}
}

// CurrentUsage counts live rows rather than trusting cached totals so a
// quote always reflects the roster as it is now.
func (p *provider) CurrentUsage(ctx context.Context, schoolID string) (billing.Usage, error) {
	school, err := p.schoolRepo.FindByID(ctx, p.db, schoolID)
	if err != nil {
		return billing.Usage{}, err
	}

	cycles, err := p.schoolRepo.CountCycles(ctx, p.db, schoolID)
	if err != nil {
		return billing.Usage{}, err
	}

	students, err := p.studentRepo.CountBySchool(ctx, p.db, schoolID)
	if err != nil {
		return billing.Usage{}, err
	}

	studentStorage, err := p.studentRepo.SumStorageBySchool(ctx, p.db, schoolID)
	if err != nil {
		return billing.Usage{}, err
	}

	return billing.Usage{
		Cycles:       cycles,
		Students:     students,
		StorageBytes: school.StorageUsedBytes + studentStorage,
	}, nil
}

var Module = fx.Module("usage",
	fx.Provide(NewProvider),
)
