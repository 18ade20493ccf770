package idempotency

import (
	"strings"

	"github.com/kelasi/kelasi/internal/config"
	"github.com/kelasi/kelasi/internal/idempotency/cache"
	"github.com/kelasi/kelasi/internal/idempotency/repository"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("idempotency",
	fx.Provide(provideRedis),
	fx.Provide(repository.Provide),
	fx.Provide(cache.New),
)

// provideRedis returns nil when no address is configured; the duplicate
// cache degrades to a no-op and the database index does all the work.
func provideRedis(cfg config.Config) *redis.Client {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})
}
