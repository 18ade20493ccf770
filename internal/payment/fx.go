package payment

import (
	"github.com/kelasi/kelasi/internal/config"
	"github.com/kelasi/kelasi/internal/payment/adapters"
	"github.com/kelasi/kelasi/internal/payment/adapters/cinetpay"
	"github.com/kelasi/kelasi/internal/payment/adapters/lygos"
	"github.com/kelasi/kelasi/internal/payment/adapters/moneroo"
	"github.com/kelasi/kelasi/internal/payment/adapters/mtnmomo"
	"github.com/kelasi/kelasi/internal/payment/adapters/stripe"
	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
	"github.com/kelasi/kelasi/internal/payment/webhook"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("payment.service",
	fx.Provide(func() *adapters.Registry {
		return adapters.NewRegistry(
			stripe.NewFactory(),
			mtnmomo.NewFactory(),
			lygos.NewFactory(),
			cinetpay.NewFactory(),
			moneroo.NewFactory(),
		)
	}),
	fx.Provide(buildAdapters),
	fx.Provide(webhook.NewService),
)

// buildAdapters constructs one adapter per enabled provider at startup.
// A provider missing its required configuration is skipped with a log
// line instead of failing the whole app.
func buildAdapters(registry *adapters.Registry, cfg config.Config, log *zap.Logger) map[string]paymentdomain.PaymentAdapter {
	log = log.Named("payment.adapters")

	configs := map[string]map[string]any{}
	if cfg.Providers.StripeWebhookSecret != "" {
		configs["stripe"] = map[string]any{
			"webhook_secret": cfg.Providers.StripeWebhookSecret,
			"xof_rate":       cfg.Providers.StripeXOFRate,
		}
	}
	if cfg.Providers.MTNMoMoEnabled {
		configs["mtnmomo"] = map[string]any{}
	}
	if cfg.Providers.LygosEnabled {
		configs["lygos"] = map[string]any{}
	}
	if cfg.Providers.CinetPayEnabled {
		configs["cinetpay"] = map[string]any{}
	}
	if cfg.Providers.MonerooEnabled {
		configs["moneroo"] = map[string]any{}
	}

	built := make(map[string]paymentdomain.PaymentAdapter, len(configs))
	for provider, providerCfg := range configs {
		adapter, err := registry.NewAdapter(provider, paymentdomain.AdapterConfig{
			Provider: provider,
			Config:   providerCfg,
		})
		if err != nil {
			log.Warn("payment provider disabled",
				zap.String("provider", provider),
				zap.Error(err),
			)
			continue
		}
		built[provider] = adapter
		log.Info("payment provider enabled", zap.String("provider", provider))
	}

	return built
}
