// Package cache is an advisory duplicate filter in front of the database
// marker. A redis outage only costs the fast path; correctness still comes
// from the unique index.
package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const seenTTL = 24 * time.Hour

type Cache struct {
	client *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Seen(ctx context.Context, provider, eventID string) bool {
	if c == nil || c.client == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key(provider, eventID)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

func (c *Cache) MarkSeen(ctx context.Context, provider, eventID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.SetNX(ctx, key(provider, eventID), "1", seenTTL)
}

func key(provider, eventID string) string {
	return "webhook:seen:" + provider + ":" + eventID
}
