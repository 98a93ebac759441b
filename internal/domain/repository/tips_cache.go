package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tipsKeyPrefix = "strand_tips:"

// TipsCache keeps generated strand tips for a while so the generative
// collaborator is not called on every page load. Misses return ("", nil).
type TipsCache interface {
	Get(ctx context.Context, strandSlug string) (string, error)
	Set(ctx context.Context, strandSlug, tips string, ttl time.Duration) error
}

type redisTipsCache struct {
	rdb *redis.Client
}

func NewRedisTipsCache(rdb *redis.Client) TipsCache {
	return &redisTipsCache{rdb: rdb}
}

func (c *redisTipsCache) Get(ctx context.Context, strandSlug string) (string, error) {
	tips, err := c.rdb.Get(ctx, tipsKeyPrefix+strandSlug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redisTipsCache.Get: %w", err)
	}
	return tips, nil
}

func (c *redisTipsCache) Set(ctx context.Context, strandSlug, tips string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, tipsKeyPrefix+strandSlug, tips, ttl).Err(); err != nil {
		return fmt.Errorf("redisTipsCache.Set: %w", err)
	}
	return nil
}
