package reconcile

import (
	"github.com/kelasi/kelasi/internal/billing"
	"github.com/kelasi/kelasi/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("reconcile",
	fx.Provide(provideConfig),
	fx.Provide(provideCalculator),
	fx.Provide(NewEngine),
)

func provideConfig(cfg config.Config) Config {
	return Config{
		Delimiters:          cfg.Providers.Delimiters,
		DriftToleranceMinor: cfg.DriftToleranceMinor,
		EnforceAmountMatch:  cfg.EnforceAmountMatch,
	}
}

func provideCalculator(holder *config.CatalogHolder) *billing.Calculator {
	return billing.NewCalculator(holder.Get)
}
