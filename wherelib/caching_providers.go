package wherelib

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Coordinates are rounded to this number of decimal places to build a
// cache key. 4 places are ~11 meters on equator.
const cachingGeoPrecision = 4

type cachingIPProvider struct {
	IPProvider

	cache *ristretto.Cache
	ttl   time.Duration
}

func (c cachingIPProvider) Lookup(ctx context.Context, ip net.IP) (IPLocation, error) {
	cacheKey := ip.String()

	if value, ok := c.cache.Get(cacheKey); ok {
		return value.(IPLocation), nil
	}

	result, err := c.IPProvider.Lookup(ctx, ip)
	if err != nil {
		return IPLocation{}, err
	}

	c.cache.SetWithTTL(cacheKey, result, 1, c.ttl)

	return result, nil
}

type cachingGeoProvider struct {
	GeoProvider

	cache *ristretto.Cache
	ttl   time.Duration
}

func (c cachingGeoProvider) ReverseGeocode(ctx context.Context, req GeocodeRequest) (GeocodedAddress, error) {
	cacheKey := strconv.FormatFloat(req.Latitude, 'f', cachingGeoPrecision, 64) + "," +
		strconv.FormatFloat(req.Longitude, 'f', cachingGeoPrecision, 64) + "," +
		strconv.Itoa(req.Zoom) + "," + req.Language

	if value, ok := c.cache.Get(cacheKey); ok {
		return value.(GeocodedAddress), nil
	}

	result, err := c.GeoProvider.ReverseGeocode(ctx, req)
	if err != nil {
		return GeocodedAddress{}, err
	}

	c.cache.SetWithTTL(cacheKey, result, 1, c.ttl)

	return result, nil
}

func newCache(itemsCount uint) (*ristretto.Cache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		MaxCost:     int64(itemsCount),
		NumCounters: 10 * int64(itemsCount),
		Metrics:     false,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create a cache: %w", err)
	}

	return cache, nil
}

// NewCachingIPProvider wraps a provider with LRU cache. Only successful
// responses are cached.
func NewCachingIPProvider(provider IPProvider, itemsCount uint, ttl time.Duration) (IPProvider, error) {
	cache, err := newCache(itemsCount)
	if err != nil {
		return nil, err
	}

	return cachingIPProvider{
		IPProvider: provider,
		cache:      cache,
		ttl:        ttl,
	}, nil
}

// NewCachingGeoProvider wraps a provider with LRU cache. Keys are
// rounded coordinates, zoom level and language.
func NewCachingGeoProvider(provider GeoProvider, itemsCount uint, ttl time.Duration) (GeoProvider, error) {
	cache, err := newCache(itemsCount)
	if err != nil {
		return nil, err
	}

	return cachingGeoProvider{
		GeoProvider: provider,
		cache:       cache,
		ttl:         ttl,
	}, nil
}
