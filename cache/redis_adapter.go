package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces every key this adapter touches so the cache
// can share a Redis instance with mqueue's streams and queue/redis's job
// storage without key collisions.
const defaultKeyPrefix = "streamcore:cache:"

// RedisAdapter implements the Cache interface using a Redis client, scoping
// every key under a configurable prefix.
type RedisAdapter struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisAdapter creates a new Redis cache adapter using defaultKeyPrefix.
// It accepts any redis.UniversalClient (e.g., *redis.Client, *redis.ClusterClient).
func NewRedisAdapter(client redis.UniversalClient) (*RedisAdapter, error) {
	return NewRedisAdapterWithPrefix(client, defaultKeyPrefix)
}

// NewRedisAdapterWithPrefix is NewRedisAdapter with an explicit key prefix,
// for deployments running more than one streamcore cache against the same
// Redis instance.
func NewRedisAdapterWithPrefix(client redis.UniversalClient, keyPrefix string) (*RedisAdapter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return &RedisAdapter{client: client, keyPrefix: keyPrefix}, nil
}

func (r *RedisAdapter) prefixed(key string) string {
	return r.keyPrefix + key
}

// Get retrieves an item from the Redis cache.
func (r *RedisAdapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.prefixed(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Use nil error for cache miss, consistent with interface
		}
		return nil, false, errors.Join(ErrOperationFailed, err)
	}
	return val, true, nil
}

// Set adds an item to the Redis cache.
func (r *RedisAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, r.prefixed(key), value, ttl).Err()
	if err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

// Delete removes an item from the Redis cache.
func (r *RedisAdapter) Delete(ctx context.Context, key string) (bool, error) {
	deletedCount, err := r.client.Del(ctx, r.prefixed(key)).Result()
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return deletedCount > 0, nil
}

// Exists checks if an item exists in the Redis cache.
func (r *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.prefixed(key)).Result()
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return exists > 0, nil
}

// Flush removes every key under this adapter's prefix by scanning and
// deleting in batches, rather than issuing FLUSHDB, since the cache shares
// its Redis instance with mqueue streams and job storage that must survive.
func (r *RedisAdapter) Flush(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.keyPrefix+"*", 0).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 500 {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return errors.Join(ErrOperationFailed, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	if len(batch) > 0 {
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return errors.Join(ErrOperationFailed, err)
		}
	}
	return nil
}

// Close closes the Redis client connection.
func (r *RedisAdapter) Close() error {
	if err := r.client.Close(); err != nil {
		return errors.Join(ErrConnectionFailed, err) // Reusing ConnectionFailed for close errors
	}
	return nil
}
