package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"oficina-import/internal/invoice/match"
	"oficina-import/internal/invoice/model"
)

const keyPrefix = "oficina:catalog:search:"

// Cached keeps Search results in Redis for a short TTL. Redis problems are
// logged and never fail a search.
type Cached struct {
	next   Searcher
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCached(next Searcher, client *redis.Client, ttl time.Duration, logger zerolog.Logger) *Cached {
	return &Cached{next: next, client: client, ttl: ttl, log: logger}
}

// NewRedisClient connects and pings.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func cacheKey(keyword string) string {
	return keyPrefix + match.Normalize(keyword)
}

func (c *Cached) Search(ctx context.Context, keyword string) ([]model.CatalogProduct, error) {
	key := cacheKey(keyword)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var out []model.CatalogProduct
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		c.log.Warn().Str("key", key).Msg("catalog cache: corrupt entry")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache: get")
	}

	out, err := c.next.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("catalog cache: set")
		}
	}
	return out, nil
}

// Invalidate drops every cached search, e.g. after a commit changed stock.
func (c *Cached) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}
