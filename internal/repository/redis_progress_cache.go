package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"streetsaga-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure implementation satisfies the interface.
var _ ProgressRepository = (*redisProgressCache)(nil)

// redisProgressCache decorates a ProgressRepository with a read-through
// Redis cache. Cache failures degrade to the database and never fail the
// request; saves invalidate the cached entry.
type redisProgressCache struct {
	inner  ProgressRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisProgressCache wraps inner with a Redis read-through cache.
func NewRedisProgressCache(inner ProgressRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) ProgressRepository {
	return &redisProgressCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisProgressCache"),
	}
}

func progressCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("progress:%s", userID.String())
}

func (c *redisProgressCache) Get(ctx context.Context, userID uuid.UUID) (models.Progress, error) {
	key := progressCacheKey(userID)

	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var progress models.Progress
		if unmarshalErr := json.Unmarshal(cached, &progress); unmarshalErr == nil {
			c.logger.Debug("Progress cache hit", zap.Stringer("userID", userID))
			return progress, nil
		}
		// A corrupt entry is dropped and served from the database.
		c.logger.Warn("Dropping unreadable progress cache entry", zap.Stringer("userID", userID))
		if delErr := c.client.Del(ctx, key).Err(); delErr != nil {
			c.logger.Warn("Failed to drop progress cache entry", zap.Error(delErr))
		}
	case errors.Is(err, redis.Nil):
		// cache miss
	default:
		c.logger.Warn("Progress cache read failed, falling back to database", zap.Error(err))
	}

	progress, err := c.inner.Get(ctx, userID)
	if err != nil {
		return models.Progress{}, err
	}

	if body, marshalErr := json.Marshal(progress); marshalErr == nil {
		if setErr := c.client.Set(ctx, key, body, c.ttl).Err(); setErr != nil {
			c.logger.Warn("Failed to populate progress cache", zap.Error(setErr))
		}
	}
	return progress, nil
}

func (c *redisProgressCache) Upsert(ctx context.Context, userID uuid.UUID, progress models.Progress) error {
	if err := c.inner.Upsert(ctx, userID, progress); err != nil {
		return err
	}
	if err := c.client.Del(ctx, progressCacheKey(userID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate progress cache after save", zap.Stringer("userID", userID), zap.Error(err))
	}
	return nil
}
