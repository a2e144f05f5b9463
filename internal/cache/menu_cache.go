package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
)

const publicMenuKey = "menu:public"

// MenuSource is the uncached read of the public menu.
type MenuSource interface {
	ListAvailable(ctx context.Context) ([]menu.Item, error)
}

// MenuCache keeps a snapshot of the public menu in Redis. Redis trouble is
// logged and the request falls through to the source; it never fails a read.
type MenuCache struct {
	rdb    *redis.Client
	source MenuSource
	ttl    time.Duration
	logger *zap.Logger
}

func NewMenuCache(rdb *redis.Client, source MenuSource, ttl time.Duration, logger *zap.Logger) *MenuCache {
	return &MenuCache{rdb: rdb, source: source, ttl: ttl, logger: logger}
}

func (c *MenuCache) ListAvailable(ctx context.Context) ([]menu.Item, error) {
	raw, err := c.rdb.Get(ctx, publicMenuKey).Bytes()
	switch {
	case err == nil:
		var items []menu.Item
		jerr := json.Unmarshal(raw, &items)
		if jerr == nil {
			return items, nil
		}
		c.logger.Warn("menu cache entry unreadable, refetching", zap.Error(jerr))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("menu cache read failed", zap.Error(err))
	}

	items, err := c.source.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(items); err == nil {
		if err := c.rdb.Set(ctx, publicMenuKey, b, c.ttl).Err(); err != nil {
			c.logger.Warn("menu cache write failed", zap.Error(err))
		}
	}
	return items, nil
}

// Invalidate drops the snapshot after the menu was changed.
func (c *MenuCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, publicMenuKey).Err(); err != nil {
		c.logger.Warn("menu cache invalidate failed", zap.Error(err))
	}
}

// NewRedisClient connects and pings so a bad address shows up at startup.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
