package storage

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/doeshing/passgen/internal/ports"
)

const redisKeyPrefix = "passgen:"

// RedisStore keeps values as plain Redis strings under a namespaced key.
type RedisStore struct {
	client *redis.Client
	addr   string
}

// NewRedisStore connects lazily to the server described by a redis:// URL.
func NewRedisStore(rawURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	return NewRedisStoreFromClient(redis.NewClient(opts)), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, addr: client.Options().Addr}
}

// Get implements ports.KeyValueStore.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "redis get %s", key)
	}
	return value, true, nil
}

// Set stores value without expiry.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.Wrapf(r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(), "redis set %s", key)
}

// Delete removes key.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(r.client.Del(ctx, redisKeyPrefix+key).Err(), "redis del %s", key)
}

// Ping checks connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Location returns the server address.
func (r *RedisStore) Location() string {
	return "redis://" + r.addr
}

// Close releases the connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ ports.KeyValueStore = (*RedisStore)(nil)
