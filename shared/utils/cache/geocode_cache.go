package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"staffdir-backend/shared/clients"
	"staffdir-backend/shared/config"
)

// GeocodeCache is a Redis-backed decorator over a Geocoder. Cache failures
// of any kind degrade to a live lookup, so the best-effort geocoding
// contract is unchanged.
type GeocodeCache struct {
	client *redis.Client
	next   clients.Geocoder
	ttl    time.Duration
}

// NewGeocodeCache creates a geocode cache in front of the given geocoder
func NewGeocodeCache(next clients.Geocoder) (*GeocodeCache, error) {
	cfg := config.GetConfig()

	redisDB, err := strconv.Atoi(cfg.RedisDB)
	if err != nil {
		log.Printf("❌ Invalid Redis DB number: %s, using default 0", cfg.RedisDB)
		redisDB = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       redisDB,
	})

	// Test connection
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("✅ Geocode cache initialized successfully - %s:%s DB:%d",
		cfg.RedisHost, cfg.RedisPort, redisDB)

	return &GeocodeCache{
		client: client,
		next:   next,
		ttl:    time.Duration(cfg.GeocodeCacheTTLMinutes) * time.Minute,
	}, nil
}

// generateKey generates the cache key for an address
func generateKey(address string) string {
	return fmt.Sprintf("geocode:%s", strings.ToLower(strings.TrimSpace(address)))
}

// Resolve returns cached coordinates for the address when present,
// otherwise consults the wrapped geocoder and stores the result.
func (gc *GeocodeCache) Resolve(ctx context.Context, address string) clients.Coordinates {
	if gc.client == nil {
		return gc.next.Resolve(ctx, address)
	}

	key := generateKey(address)

	if result, err := gc.client.Get(ctx, key).Result(); err == nil {
		var coords clients.Coordinates
		if err := json.Unmarshal([]byte(result), &coords); err == nil {
			log.Printf("✅ Geocode cache hit: %s", key)
			return coords
		}
		log.Printf("❌ Failed to unmarshal cached coordinates: %v", err)
	} else if err != redis.Nil {
		log.Printf("❌ Geocode cache error: %v", err)
	}

	coords := gc.next.Resolve(ctx, address)

	jsonData, err := json.Marshal(coords)
	if err != nil {
		return coords
	}
	if err := gc.client.Set(ctx, key, jsonData, gc.ttl).Err(); err != nil {
		log.Printf("❌ Failed to cache coordinates: %v", err)
	}

	return coords
}

// Close closes the cache connection
func (gc *GeocodeCache) Close() error {
	if gc != nil && gc.client != nil {
		return gc.client.Close()
	}
	return nil
}
