package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a key-value store with expiration
type Store interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
}

// RedisStore is a Redis-backed key-value store
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis store
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client}, nil
}

// Set stores a key-value pair with expiration
func (rs *RedisStore) Set(key string, value string, expiration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rs.client.Set(ctx, key, value, expiration)
}

// Get retrieves a value by key
func (rs *RedisStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	value, err := rs.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Delete removes a key
func (rs *RedisStore) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rs.client.Del(ctx, key)
}

// Close closes the underlying client
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
