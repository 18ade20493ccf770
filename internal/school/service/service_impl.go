package service

import (
	"context"
	"time"

	"github.com/kelasi/kelasi/internal/clock"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log   *zap.Logger
	clock clock.Clock
	repo  schooldomain.Repository
}

type ServiceParam struct {
	fx.In

	Log   *zap.Logger
	Clock clock.Clock
	Repo  schooldomain.Repository
}

func NewService(p ServiceParam) schooldomain.Service {
	return &Service{
		log:   p.Log.Named("school.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Extend implements domain.Service. It must run inside the caller's
// transaction so the subscription update commits or rolls back together
// with the processed-event marker.
func (s *Service) Extend(ctx context.Context, tx *gorm.DB, schoolID string, plan schooldomain.PlanName, months int) (time.Time, error) {
	school, err := s.repo.FindByIDForUpdate(ctx, tx, schoolID)
	if err != nil {
		return time.Time{}, err
	}

	next, err := schooldomain.ExtendSubscription(school.Subscription, plan, months, s.clock.Now().UTC())
	if err != nil {
		return time.Time{}, err
	}

	if err := s.repo.UpdateSubscription(ctx, tx, school.ID, next); err != nil {
		return time.Time{}, err
	}

	s.log.Info("subscription extended",
		zap.String("school_id", school.ID),
		zap.String("plan", string(next.Plan)),
		zap.Int("months", months),
		zap.Timep("end_at", next.EndAt),
	)

	return *next.EndAt, nil
}
