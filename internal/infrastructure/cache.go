package infrastructure

import (
	"context"
	"time"

	"github.com/architeacher/device-registry/internal/config"
	appLogger "github.com/architeacher/device-registry/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CacheClient wraps a Redis/KeyDB connection for the device cache.
type CacheClient struct {
	client *redis.Client
	logger appLogger.Logger
}

func NewCacheClient(cfg config.Cache, logger appLogger.Logger) *CacheClient {
	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           int(cfg.DB),
		PoolSize:     int(cfg.PoolSize),
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &CacheClient{
		client: redis.NewClient(opts),
		logger: logger,
	}
}

// NewCacheClientWithRedis injects an existing Redis client, used by tests
// to point the cache at an in-process server.
func NewCacheClientWithRedis(client *redis.Client, logger appLogger.Logger) *CacheClient {
	return &CacheClient{
		client: client,
		logger: logger,
	}
}

func (c *CacheClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *CacheClient) Close() error {
	return c.client.Close()
}

func (c *CacheClient) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()

	result, err := c.client.Get(ctx, key).Bytes()

	c.logger.Debug().
		Str("key", key).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Bool("hit", err == nil).
		Msg("cache get operation")

	return result, err
}

func (c *CacheClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()

	err := c.client.Set(ctx, key, value, ttl).Err()

	c.logger.Debug().
		Str("key", key).
		Str("expiry", ttl.String()).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Bool("success", err == nil).
		Msg("cache set operation")

	return err
}

func (c *CacheClient) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Lock sets the key only if it does not already exist. Returns true
// when the lock was acquired.
func (c *CacheClient) Lock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, value, ttl).Result()
}
