// internal/store/geocache.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lead-dispatch-workers/internal/dispatch/geo"
	"lead-dispatch-workers/internal/models"
)

// CachedResolver layers Redis over another geography resolver. Postal
// geography changes rarely, so entries live long; misses are cached
// too, as a zero Area, to stop repeated lookups of junk codes.
type CachedResolver struct {
	inner  geo.Resolver
	client *redis.Client
	ttl    time.Duration
}

func NewCachedResolver(inner geo.Resolver, client *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{inner: inner, client: client, ttl: ttl}
}

func geoKey(postalCode string) string {
	return fmt.Sprintf("geo:postal:%s", postalCode)
}

func (r *CachedResolver) Resolve(postalCode string) models.Area {
	if postalCode == "" {
		return models.Area{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if data, err := r.client.Get(ctx, geoKey(postalCode)).Bytes(); err == nil {
		var area models.Area
		if json.Unmarshal(data, &area) == nil {
			return area
		}
	}

	area := r.inner.Resolve(postalCode)

	if data, err := json.Marshal(area); err == nil {
		// Best effort; a failed cache write just means another lookup.
		r.client.Set(ctx, geoKey(postalCode), data, r.ttl)
	}

	return area
}
