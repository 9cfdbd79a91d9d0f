package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written to Redis.
const DefaultKeyPrefix = "gtlang:"

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 500

// RedisCache is a Redis-backed suggestion cache, shared between machines
// working on the same language pack.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379/0")
	TTL       time.Duration // entry lifetime (0 = no expiration)
	KeyPrefix string        // Prefix for all keys (default: "gtlang:")
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if ttl < 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value from Redis. Errors are reported as misses.
func (c *RedisCache) Get(key string) (string, bool) {
	val, err := c.client.Get(context.Background(), c.keyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value in Redis.
func (c *RedisCache) Set(key string, value string) error {
	return c.client.Set(context.Background(), c.keyPrefix+key, value, c.ttl).Err()
}

// Keys walks the key space with SCAN and returns every key under the
// prefix, with the prefix removed.
func (c *RedisCache) Keys() ([]string, error) {
	ctx := context.Background()
	var keys []string
	var cursor uint64
	for {
		batch, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				break
			}
			return nil, err
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, c.keyPrefix))
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return keys, nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	return c.client.Ping(context.Background()).Err()
}

var _ ExportableCache = (*RedisCache)(nil)
