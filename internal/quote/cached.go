package quote

import (
	"context"
	"time"

	"paper_trader/internal/utils" // Redis JSON cache helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"
)

// CachedProvider keeps successful lookups in Redis for TTL
type CachedProvider struct {
	Inner Provider
	Redis *redis.Client
	TTL   time.Duration
}

// NewCachedProvider wraps inner with a Redis cache
func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	return &CachedProvider{Inner: inner, Redis: rdb, TTL: ttl}
}

// CacheKey is the Redis key a symbol's quote is stored under
func CacheKey(symbol string) string {
	return "quote:" + Normalize(symbol)
}

// Lookup implements Provider
func (c *CachedProvider) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	key := CacheKey(symbol)
	var cached Quote
	found, err := utils.GetCache(ctx, c.Redis, key, &cached) // Try to get from cache
	if err == nil && found {
		return &cached, nil
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Quote cache read failed")
	}
	q, err := c.Inner.Lookup(ctx, symbol)
	if err != nil {
		return nil, err // misses are never cached
	}
	// Cache the quote
	if err := utils.SetCache(ctx, c.Redis, key, q, c.TTL); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Quote cache write failed")
	}
	return q, nil
}
