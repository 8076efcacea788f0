package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisCache shares entries between every process pointed at the same
// server.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisCache(ctx context.Context, cfg RedisConfig) (RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := client.Ping(pingCtx).Err()
	if err != nil {
		client.Close()
		return RedisCache{}, err
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "steamtrader"
	}
	return RedisCache{client: client, keyPrefix: keyPrefix}, nil
}

func (c RedisCache) key(key string) string {
	return c.keyPrefix + ":" + key
}

func (c RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", &Error{Op: "get", Key: key, Err: err}
	}
	return value, nil
}

func (c RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	err := c.client.Set(ctx, c.key(key), value, ttl).Err()
	if err != nil {
		return &Error{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (c RedisCache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.key(key)).Err()
	if err != nil {
		return &Error{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (c RedisCache) Close() error {
	return c.client.Close()
}
