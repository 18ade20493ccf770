// Package scheduler runs periodic maintenance: marking subscriptions whose
// paid period has lapsed as past_due so the application tier can restrict
// access until the next renewal webhook arrives.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/kelasi/kelasi/internal/clock"
	schooldomain "github.com/kelasi/kelasi/internal/school/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidConfig = errors.New("invalid_scheduler_config")

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Repo   schooldomain.Repository
	Config Config `optional:"true"`
}

type Scheduler struct {
	db    *gorm.DB
	log   *zap.Logger
	cfg   Config
	clock clock.Clock
	repo  schooldomain.Repository

	stop chan struct{}
	done chan struct{}
}

func New(p Params) (*Scheduler, error) {
	if p.DB == nil || p.Log == nil || p.Clock == nil || p.Repo == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		db:    p.DB,
		log:   p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:   p.Config.withDefaults(),
		clock: p.Clock,
		repo:  p.Repo,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}, nil
}

func (s *Scheduler) Start() {
	go s.run()
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if err := s.RunOnce(context.Background()); err != nil {
				s.log.Error("maintenance sweep failed", zap.Error(err))
			}
		}
	}
}

// RunOnce executes one sweep. Safe to run concurrently across replicas:
// the update is a single statement and flipping a row twice is harmless.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.SweepTimeout)
	defer cancel()

	now := s.clock.Now().UTC()
	lapsed, err := s.repo.MarkLapsedPastDue(ctx, s.db, now)
	if err != nil {
		return err
	}
	if lapsed > 0 {
		s.log.Info("subscriptions marked past_due",
			zap.Int64("count", lapsed),
			zap.Time("cutoff", now),
		)
	}
	return nil
}
