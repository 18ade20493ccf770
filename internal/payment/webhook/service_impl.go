// Package webhook receives provider deliveries, verifies and parses them,
// and hands the resulting event to the reconciliation engine.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kelasi/kelasi/internal/observability/metrics"
	paymentdomain "github.com/kelasi/kelasi/internal/payment/domain"
	"github.com/kelasi/kelasi/internal/reconcile"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Adapters map[string]paymentdomain.PaymentAdapter
	Engine   reconcile.Engine
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	adapters map[string]paymentdomain.PaymentAdapter
	engine   reconcile.Engine
	metrics  *metrics.Metrics
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		log:      p.Log.Named("payment.webhook"),
		adapters: p.Adapters,
		engine:   p.Engine,
		metrics:  p.Metrics,
	}
}

// IngestWebhook implements domain.Service. Signature verification happens
// before anything touches storage; an unverifiable delivery is rejected
// without side effects.
func (s *Service) IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return paymentdomain.ErrInvalidProvider
	}

	adapter, ok := s.adapters[provider]
	if !ok {
		return paymentdomain.ErrProviderNotFound
	}
	if !json.Valid(payload) {
		s.metrics.RecordWebhookEvent(ctx, provider, "invalid_payload")
		return paymentdomain.ErrInvalidPayload
	}

	if err := adapter.Verify(ctx, payload, headers); err != nil {
		s.metrics.RecordWebhookEvent(ctx, provider, "verify_failed")
		s.log.Warn("webhook verification failed",
			zap.String("provider", provider),
			zap.Error(err),
		)
		return err
	}

	event, err := adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrEventIgnored) {
			s.metrics.RecordWebhookEvent(ctx, provider, "ignored")
			return nil
		}
		s.metrics.RecordWebhookEvent(ctx, provider, "parse_failed")
		return err
	}

	event.Provider = provider
	if event.RawPayload == nil {
		event.RawPayload = payload
	}

	s.metrics.RecordWebhookEvent(ctx, provider, "accepted")
	return s.engine.Reconcile(ctx, event)
}
