package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants. Report payloads are derived data; short TTLs keep the
// dashboard fresh without hammering the aggregate queries.
const (
	ReportTTL       = 5 * time.Minute
	ChurnReportTTL  = 30 * time.Minute
	SnapshotListTTL = time.Minute
)

// ErrMiss is returned when the key is absent or the cache is disabled
var ErrMiss = errors.New("cache miss")

// ReportCache is a JSON read-through cache for report payloads. A nil
// client disables caching entirely; every Get becomes a miss and every Set
// a no-op, so callers never branch on whether Redis is configured.
type ReportCache struct {
	client *redis.Client
}

// NewReportCache creates a new report cache. client may be nil.
func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Get unmarshals the cached payload for key into dest
func (c *ReportCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached payload for %s: %w", key, err)
	}

	return nil
}

// Set stores value under key for the given TTL
func (c *ReportCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", key, err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// ReportKey builds a cache key from the report name and its scope parts
func ReportKey(report string, parts ...string) string {
	key := "report:" + report
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
