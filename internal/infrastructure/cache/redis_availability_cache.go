package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appfulfillment "github.com/retail/backoffice/internal/application/fulfillment"
)

// RedisAvailabilityCache stores per-order availability reports in Redis.
// Entries are short lived; the fulfillment service invalidates them whenever
// an assignment or scan changes the inventory picture.
type RedisAvailabilityCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisAvailabilityCache creates a Redis-backed availability cache
func NewRedisAvailabilityCache(cfg RedisConfig, ttl time.Duration) (*RedisAvailabilityCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisAvailabilityCache{
		client:    client,
		keyPrefix: "availability:order:",
		ttl:       ttl,
	}, nil
}

// NewRedisAvailabilityCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisAvailabilityCacheWithClient(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisAvailabilityCache{
		client:    client,
		keyPrefix: "availability:order:",
		ttl:       ttl,
	}
}

// Get returns the cached report for an order, or nil on a miss
func (c *RedisAvailabilityCache) Get(ctx context.Context, orderID uuid.UUID) (*appfulfillment.AvailabilityReport, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+orderID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read availability report: %w", err)
	}

	var report appfulfillment.AvailabilityReport
	if err := json.Unmarshal(payload, &report); err != nil {
		// A corrupt entry is treated as a miss; the evaluator will overwrite it
		return nil, nil
	}
	return &report, nil
}

// Set stores the report for an order with the configured TTL
func (c *RedisAvailabilityCache) Set(ctx context.Context, orderID uuid.UUID, report *appfulfillment.AvailabilityReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode availability report: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+orderID.String(), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store availability report: %w", err)
	}
	return nil
}

// Invalidate drops the cached report for an order
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, orderID uuid.UUID) error {
	if err := c.client.Del(ctx, c.keyPrefix+orderID.String()).Err(); err != nil {
		return fmt.Errorf("failed to invalidate availability report: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisAvailabilityCache) Close() error {
	return c.client.Close()
}

// Ensure RedisAvailabilityCache implements AvailabilityCache
var _ appfulfillment.AvailabilityCache = (*RedisAvailabilityCache)(nil)
