package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"contexthub/internal/models"
)

const (
	keyPrefix  = "contexthub:context:"
	defaultTTL = 15 * time.Minute
)

// RedisCache keeps serialized message histories in Redis, keyed by session
// id. Any Redis failure degrades to a miss.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCache connects to the given Redis URL (e.g. redis://localhost:6379).
func NewRedisCache(url string, logger *zap.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{
		client: redis.NewClient(opts),
		ttl:    defaultTTL,
		logger: logger,
	}, nil
}

// Ping verifies the connection. Callers may choose to run without a cache
// when this fails.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, sessionID string) ([]models.Message, bool) {
	data, err := c.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil, false
	}
	var messages []models.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("session_id", sessionID), zap.Error(err))
		c.Invalidate(ctx, sessionID)
		return nil, false
	}
	return messages, true
}

func (c *RedisCache) Set(ctx context.Context, sessionID string, messages []models.Message) {
	data, err := json.Marshal(messages)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+sessionID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, sessionID string) {
	if err := c.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		c.logger.Warn("cache invalidate failed", zap.String("session_id", sessionID), zap.Error(err))
	}
}
