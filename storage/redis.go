package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const redisOpTimeout = 2 * time.Second

// RedisStore mirrors the session into Redis, one hash field per session key.
// Intended for kiosk-style deployments where several probe processes share a
// recovered session.
//
// Redis being down never surfaces to callers: Get degrades to "" and writes
// are logged and dropped.
type RedisStore struct {
	client *redis.Client
	key    string
	log    zerolog.Logger
}

// NewRedisStore creates a Redis-backed mirror stored under the hash key
// "<prefix>:session". An empty prefix defaults to "sk".
func NewRedisStore(client *redis.Client, prefix string, log zerolog.Logger) *RedisStore {
	if prefix == "" {
		prefix = "sk"
	}
	return &RedisStore{
		client: client,
		key:    prefix + ":session",
		log:    log,
	}
}

// Get returns the stored value, or "" when absent or Redis is unavailable.
func (r *RedisStore) Get(key string) string {
	if r == nil || r.client == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	value, err := r.client.HGet(ctx, r.key, key).Result()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn().Err(err).Str("field", key).Msg("session mirror read failed")
		}
		return ""
	}
	return value
}

// Set stores value under key.
func (r *RedisStore) Set(key, value string) {
	if r == nil || r.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.HSet(ctx, r.key, key, value).Err(); err != nil {
		r.log.Warn().Err(err).Str("field", key).Msg("session mirror write failed")
	}
}

// Remove deletes key.
func (r *RedisStore) Remove(key string) {
	if r == nil || r.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := r.client.HDel(ctx, r.key, key).Err(); err != nil {
		r.log.Warn().Err(err).Str("field", key).Msg("session mirror delete failed")
	}
}
