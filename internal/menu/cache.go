package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds a venue's published menus with their schedules. Only the raw
// records are cached; visibility is always evaluated fresh.
type Cache interface {
	Get(ctx context.Context, venueID string) ([]Menu, bool, error)
	Set(ctx context.Context, venueID string, menus []Menu) error
	Invalidate(ctx context.Context, venueID string) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(venueID string) string {
	return fmt.Sprintf("menuboard:venue:%s:menus", venueID)
}

func (c *RedisCache) Get(ctx context.Context, venueID string) ([]Menu, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(venueID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var menus []Menu
	if err := json.Unmarshal(raw, &menus); err != nil {
		return nil, false, err
	}
	return menus, true, nil
}

func (c *RedisCache) Set(ctx context.Context, venueID string, menus []Menu) error {
	raw, err := json.Marshal(menus)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(venueID), raw, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, venueID string) error {
	return c.client.Del(ctx, cacheKey(venueID)).Err()
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]Menu, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []Menu) error          { return nil }
func (NopCache) Invalidate(context.Context, string) error           { return nil }
