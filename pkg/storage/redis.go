package storage

import (
	"context"
	"time"

	"github.com/angelmondragon/shopdash/pkg/redis"
)

// KV is the slice of the redis client the store relies on.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ClientStateKey(name string) string
	Ping(ctx context.Context) error
	Close() error
}

// RedisStore keeps client state under sd:client_state:<key>. Values never
// expire.
type RedisStore struct {
	kv KV
}

func NewRedisStore(kv KV) *RedisStore {
	return &RedisStore{kv: kv}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := r.kv.Get(ctx, r.kv.ClientStateKey(key))
	if redis.IsNil(err) {
		return "", ErrNotFound
	}
	return value, err
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.kv.Set(ctx, r.kv.ClientStateKey(key), value, 0)
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.kv.Del(ctx, r.kv.ClientStateKey(key))
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.kv.Ping(ctx)
}

func (r *RedisStore) Close() error {
	return r.kv.Close()
}
