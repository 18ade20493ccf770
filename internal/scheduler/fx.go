package scheduler

import (
	"context"
	"time"

	"github.com/kelasi/kelasi/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(provideConfig),
	fx.Provide(New),
	fx.Invoke(register),
)

func provideConfig(cfg config.Config) Config {
	return Config{
		Enabled:     cfg.SweepEnabled,
		RunInterval: time.Duration(cfg.SweepIntervalSeconds) * time.Second,
	}
}

func register(lc fx.Lifecycle, s *Scheduler, cfg Config) {
	if !cfg.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})
}
