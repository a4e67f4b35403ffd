package kvstore

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/multierr"
)

const scanBatchSize = 100

var _ Backend = (*RedisBackend)(nil)

// RedisBackend keeps durable values as plain redis strings without expiry.
type RedisBackend struct {
	redisClient *redis.Client
}

func NewRedisBackend(redisClient *redis.Client) *RedisBackend {
	return &RedisBackend{
		redisClient: redisClient,
	}
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	return r.redisClient.Set(ctx, key, value, 0).Err()
}

func (r *RedisBackend) Remove(ctx context.Context, key string) error {
	return r.redisClient.Del(ctx, key).Err()
}

// RemovePrefix walks the keyspace with SCAN and deletes every match batch by batch.
// A failed batch does not stop the sweep, all errors are returned combined.
func (r *RedisBackend) RemovePrefix(ctx context.Context, prefix string) error {
	var (
		cursor   uint64
		err      error
		sweepErr error
	)
	for {
		var keys []string
		keys, cursor, err = r.redisClient.Scan(ctx, cursor, prefix+"*", scanBatchSize).Result()
		if err != nil {
			return multierr.Append(sweepErr, err)
		}
		if len(keys) > 0 {
			if delErr := r.redisClient.Del(ctx, keys...).Err(); delErr != nil {
				sweepErr = multierr.Append(sweepErr, delErr)
			}
		}
		if cursor == 0 {
			return sweepErr
		}
	}
}
