package ratelimit

import (
	"context"
	"strings"

	"github.com/kelasi/kelasi/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyWebhookProvider = "ratelimit:webhook:provider:"
	keyWebhookSource   = "ratelimit:webhook:source:"
)

// WebhookLimiter throttles webhook deliveries per provider and per source
// address. A nil limiter, a disabled config, or a redis failure all let
// traffic through; the limiter sheds load, it never loses deliveries.
type WebhookLimiter struct {
	enabled bool
	log     *zap.Logger
	bucket  *TokenBucket

	providerRate  float64
	providerBurst int
	sourceRate    float64
	sourceBurst   int
}

func NewWebhookLimiter(cfg config.Config, client *redis.Client, log *zap.Logger) *WebhookLimiter {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled || client == nil {
		return nil
	}
	return &WebhookLimiter{
		enabled:       true,
		log:           log.Named("ratelimit.webhook"),
		bucket:        NewTokenBucket(client),
		providerRate:  limitCfg.WebhookRate,
		providerBurst: limitCfg.WebhookBurst,
		sourceRate:    limitCfg.WebhookSourceRate,
		sourceBurst:   limitCfg.WebhookSourceBurst,
	}
}

func (l *WebhookLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// Allow checks both buckets and returns the first throttled result.
func (l *WebhookLimiter) Allow(ctx context.Context, provider, source string) *Result {
	if !l.Enabled() {
		return &Result{Allowed: true}
	}

	res, err := l.bucket.Allow(ctx, keyWebhookProvider+strings.TrimSpace(provider), l.providerRate, l.providerBurst)
	if err != nil {
		l.log.Warn("provider rate limit check failed", zap.Error(err))
		return &Result{Allowed: true}
	}
	if !res.Allowed {
		return res
	}

	if source == "" {
		return res
	}
	srcRes, err := l.bucket.Allow(ctx, keyWebhookSource+strings.TrimSpace(source), l.sourceRate, l.sourceBurst)
	if err != nil {
		l.log.Warn("source rate limit check failed", zap.Error(err))
		return &Result{Allowed: true}
	}
	return srcRes
}
