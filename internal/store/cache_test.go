// internal/store/cache_test.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-dispatch-workers/internal/common/logger"
	"lead-dispatch-workers/internal/dispatch/geo"
	"lead-dispatch-workers/internal/models"
	"lead-dispatch-workers/pkg/registry"
)

func testRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSnapshotCache_RoundTrip(t *testing.T) {
	mr, client := testRedis(t)
	cache := NewSnapshotCache(client, 30*time.Second, logger.NewTestLogger(t))
	ctx := context.Background()

	_, found := cache.Get(ctx, "tenant-1")
	assert.False(t, found)

	lastAssigned := time.Date(2026, 4, 30, 6, 0, 0, 0, time.UTC)
	vendors := []models.VendorRecord{
		{
			ID:                "V1",
			CompanyName:       "Miami Rapid Tow",
			Status:            models.VendorStatusActive,
			TakingNewWork:     true,
			ServiceCategories: []string{"Boat Towing"},
			CoverageType:      models.CoverageCounty,
			CoverageValues:    []string{"Miami-Dade, FL"},
			PerformanceScore:  0.9,
			LastAssignedAt:    &lastAssigned,
			OpenAssignments:   3,
		},
	}

	cache.Set(ctx, "tenant-1", vendors)

	got, found := cache.Get(ctx, "tenant-1")
	require.True(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, vendors[0].ID, got[0].ID)
	assert.Equal(t, vendors[0].CoverageValues, got[0].CoverageValues)
	require.NotNil(t, got[0].LastAssignedAt)
	assert.True(t, lastAssigned.Equal(*got[0].LastAssignedAt))

	// Entries expire with the configured TTL.
	mr.FastForward(31 * time.Second)
	_, found = cache.Get(ctx, "tenant-1")
	assert.False(t, found)
}

func TestSnapshotCache_Invalidate(t *testing.T) {
	_, client := testRedis(t)
	cache := NewSnapshotCache(client, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	cache.Set(ctx, "tenant-1", []models.VendorRecord{{ID: "V1"}})
	cache.Invalidate(ctx, "tenant-1")

	_, found := cache.Get(ctx, "tenant-1")
	assert.False(t, found)
}

func TestSnapshotCache_CorruptEntryIsDropped(t *testing.T) {
	mr, client := testRedis(t)
	cache := NewSnapshotCache(client, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	require.NoError(t, mr.Set("vendors:snapshot:tenant-1", "{not json"))

	_, found := cache.Get(ctx, "tenant-1")
	assert.False(t, found)
	assert.False(t, mr.Exists("vendors:snapshot:tenant-1"))
}

func TestSnapshotCache_RedisDownDegradesToMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewSnapshotCache(client, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	mock.ExpectGet("vendors:snapshot:tenant-1").SetErr(errors.New("connection refused"))

	_, found := cache.Get(ctx, "tenant-1")
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotCache_WriteFailureIsSwallowed(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewSnapshotCache(client, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	vendors := []models.VendorRecord{{ID: "V1"}}
	data, err := json.Marshal(vendors)
	require.NoError(t, err)

	mock.ExpectSet("vendors:snapshot:tenant-1", data, time.Minute).SetErr(errors.New("connection refused"))
	mock.ExpectDel("vendors:snapshot:tenant-1").SetErr(errors.New("connection refused"))

	// Neither path returns an error to the caller.
	cache.Set(ctx, "tenant-1", vendors)
	cache.Invalidate(ctx, "tenant-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedResolver_RedisDownFallsThrough(t *testing.T) {
	client, mock := redismock.NewClientMock()
	inner := geo.NewDatasetResolver(registry.DefaultRuleset())
	resolver := NewCachedResolver(inner, client, time.Hour)

	mock.ExpectGet("geo:postal:33149").SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet("geo:postal:33149", `.*`, time.Hour).SetErr(errors.New("connection refused"))

	area := resolver.Resolve("33149")
	assert.Equal(t, "Miami-Dade", area.County)
}

func TestCachedResolver(t *testing.T) {
	mr, client := testRedis(t)
	inner := geo.NewDatasetResolver(registry.DefaultRuleset())
	resolver := NewCachedResolver(inner, client, time.Hour)

	area := resolver.Resolve("33149")
	assert.Equal(t, "Miami-Dade", area.County)
	assert.True(t, mr.Exists("geo:postal:33149"))

	// Second resolve is served from the cache.
	again := resolver.Resolve("33149")
	assert.Equal(t, area, again)

	// Misses are cached too.
	miss := resolver.Resolve("99999")
	assert.True(t, miss.IsZero())
	assert.True(t, mr.Exists("geo:postal:99999"))
}
