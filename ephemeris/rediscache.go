package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vedavox/panchangam/log"
	"github.com/go-redis/redis/v8"
)

var redisLogger = log.Logger()

// RedisCache implements Cache on top of go-redis, for deployments that
// share an ephemeris cache across multiple process instances rather than
// keeping the bounded in-memory LRU per-process.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	keyPrefix string
}

type redisEnvelope struct {
	Value    json.RawMessage `json:"value"`
	CachedAt time.Time       `json:"cached_at"`
}

// NewRedisCache creates a new Redis-backed cache and verifies connectivity.
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	redisLogger.Info("ephemeris redis cache connected", "addr", addr, "db", db, "ttl", ttl)

	return &RedisCache{client: rdb, ttl: ttl, keyPrefix: "ephemeris:"}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (interface{}, bool) {
	val, err := r.client.Get(ctx, r.keyPrefix+key).Result()
	if err != nil {
		return nil, false
	}

	var env redisEnvelope
	if err := json.Unmarshal([]byte(val), &env); err != nil {
		redisLogger.Error("corrupted cache entry", "key", key, "error", err)
		r.client.Del(ctx, r.keyPrefix+key)
		return nil, false
	}

	if r.ttl > 0 && time.Since(env.CachedAt) > r.ttl {
		r.client.Del(ctx, r.keyPrefix+key)
		return nil, false
	}

	var value interface{}
	if err := json.Unmarshal(env.Value, &value); err != nil {
		return nil, false
	}
	return value, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if ttl == 0 {
		ttl = r.ttl
	}

	raw, err := json.Marshal(value)
	if err != nil {
		redisLogger.Error("failed to marshal cache value", "key", key, "error", err)
		return
	}

	env := redisEnvelope{Value: raw, CachedAt: time.Now()}
	envBytes, err := json.Marshal(env)
	if err != nil {
		return
	}

	if err := r.client.Set(ctx, r.keyPrefix+key, envBytes, ttl).Err(); err != nil {
		redisLogger.Error("failed to set cache key", "key", key, "error", err)
	}
}

func (r *RedisCache) Delete(ctx context.Context, key string) bool {
	n, err := r.client.Del(ctx, r.keyPrefix+key).Result()
	return err == nil && n > 0
}

func (r *RedisCache) Clear(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, r.keyPrefix+"*").Result()
	if err != nil {
		return fmt.Errorf("failed to list cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisCache) GetStats(ctx context.Context) *CacheStats {
	keys, err := r.client.Keys(ctx, r.keyPrefix+"*").Result()
	if err != nil {
		return &CacheStats{}
	}
	return &CacheStats{Entries: int64(len(keys))}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

var _ Cache = (*RedisCache)(nil)
