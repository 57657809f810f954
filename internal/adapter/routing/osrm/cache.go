package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbnm007/traffic-management-system/internal/core/domain"
)

// routeCache stores routing provider responses in Redis. Planned routes for
// a fixed origin/destination pair change rarely, so a long TTL saves most of
// the provider round-trips.
type routeCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func newRouteCache(redisClient *redis.Client) *routeCache {
	ttl := 86400 // one day
	if val := os.Getenv("ROUTE_CACHE_TTL_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return &routeCache{
		redisClient: redisClient,
		ttl:         time.Duration(ttl) * time.Second,
	}
}

func (c *routeCache) Get(ctx context.Context, key string, result *domain.Route) (bool, error) {
	if c.redisClient == nil {
		return false, nil
	}

	val, err := c.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}

	return true, nil
}

func (c *routeCache) Set(ctx context.Context, key string, value *domain.Route) error {
	if c.redisClient == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := c.redisClient.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	return nil
}

func (c *routeCache) RouteKey(origin, destination domain.Point) string {
	return fmt.Sprintf("route:%f:%f:%f:%f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}
