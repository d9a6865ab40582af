package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisOpTimeout = 500 * time.Millisecond

// Redis is a Cache shared by every API replica. Values are stored as JSON
// under prefix+key. Redis failures degrade to misses and are logged, so a
// cache outage never fails a settings read or write.
type Redis[V any] struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

var _ Cache[struct{}] = (*Redis[struct{}])(nil)

// NewRedis wraps an existing client. The caller owns the client.
func NewRedis[V any](client *redis.Client, prefix string, logger *zap.Logger) *Redis[V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis[V]{client: client, prefix: prefix, logger: logger}
}

func (r *Redis[V]) Get(key string) (V, bool) {
	var zero V
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis cache get failed", zap.String("key", key), zap.Error(err))
		}
		return zero, false
	}

	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		r.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		r.Delete(key)
		return zero, false
	}
	return v, true
}

func (r *Redis[V]) Set(key string, value V, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("redis cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := r.client.Set(ctx, r.prefix+key, raw, ttl).Err(); err != nil {
		r.logger.Warn("redis cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *Redis[V]) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		r.logger.Warn("redis cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
