package localstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisStore keeps records in Redis, one record per key. It serves
// deployments where the "device" is a shared kiosk or a server-side session
// and the cart should survive process restarts.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis at addr, which may be a plain
// "host:port" or a redis:// URL.
func NewRedisStore(addr, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
	}
	return &RedisStore{client: redis.NewClient(opts), prefix: prefix}, nil
}

func (r *RedisStore) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

// Get reads the record stored under key
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %q", key)
	}
	return value, nil
}

// Set overwrites the record stored under key
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis set %q", key)
	}
	return nil
}

// Delete removes the record stored under key
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return errors.Wrapf(err, "redis del %q", key)
	}
	return nil
}

// Ping checks the connection
func (r *RedisStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err()
}

// Close releases the Redis connection pool
func (r *RedisStore) Close() error {
	return r.client.Close()
}
