// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/models"
)

// SnapshotCache keeps a short-lived copy of each tenant's vendor
// snapshot in Redis so bursts of leads from one tenant don't hammer
// Postgres. Staleness within the TTL is acceptable: the engine's
// scoring tolerates slightly out-of-date workload counters, and the
// assignment write-back invalidates the entry.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration, log logger.Logger) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "snapshot-cache"}),
	}
}

func snapshotKey(tenantID string) string {
	return fmt.Sprintf("vendors:snapshot:%s", tenantID)
}

// Get returns the cached snapshot and whether it was present. Cache
// errors are logged and reported as a miss, never surfaced.
func (c *SnapshotCache) Get(ctx context.Context, tenantID string) ([]models.VendorRecord, bool) {
	data, err := c.client.Get(ctx, snapshotKey(tenantID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("snapshot cache read failed", map[string]interface{}{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, false
	}

	var vendors []models.VendorRecord
	if err := json.Unmarshal(data, &vendors); err != nil {
		c.logger.Warn("snapshot cache entry corrupt, dropping", map[string]interface{}{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		c.client.Del(ctx, snapshotKey(tenantID))
		return nil, false
	}

	return vendors, true
}

func (c *SnapshotCache) Set(ctx context.Context, tenantID string, vendors []models.VendorRecord) {
	data, err := json.Marshal(vendors)
	if err != nil {
		c.logger.Warn("snapshot cache encode failed", map[string]interface{}{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, snapshotKey(tenantID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("snapshot cache write failed", map[string]interface{}{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
	}
}

// Invalidate drops the tenant's entry, called after an assignment
// mutates vendor workload fields.
func (c *SnapshotCache) Invalidate(ctx context.Context, tenantID string) {
	if err := c.client.Del(ctx, snapshotKey(tenantID)).Err(); err != nil {
		c.logger.Warn("snapshot cache invalidation failed", map[string]interface{}{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
	}
}
