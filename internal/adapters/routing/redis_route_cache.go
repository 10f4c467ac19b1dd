package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"healthnav-service/internal/domain"
)

// RedisRouteCache is a redis-backed cache for computed routes.
//
// Keys pair origin and destination coordinates; entries expire so stale
// road data does not live forever. A nil cache pointer disables caching
// at the provider.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

func routeKey(origin, destination domain.Coordinate) string {
	return fmt.Sprintf("route:%.5f,%.5f->%.5f,%.5f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// Get returns the cached route for the pair, or nil on a miss.
func (c *RedisRouteCache) Get(ctx context.Context, origin, destination domain.Coordinate) (*domain.Route, error) {
	if c.client == nil {
		return nil, errors.New("route cache: client is nil")
	}

	raw, err := c.client.Get(ctx, routeKey(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get route cache: %w", err)
	}

	var route domain.Route
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil, fmt.Errorf("get route cache: decode entry: %w", err)
	}

	return &route, nil
}

// Put stores the computed route for the pair.
func (c *RedisRouteCache) Put(ctx context.Context, origin, destination domain.Coordinate, route *domain.Route) error {
	if c.client == nil {
		return errors.New("route cache: client is nil")
	}
	if route == nil {
		return errors.New("put route cache: route is nil")
	}

	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode entry: %w", err)
	}

	if err := c.client.Set(ctx, routeKey(origin, destination), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}

	return nil
}
