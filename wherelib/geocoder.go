package wherelib

import (
	"context"
	"errors"
	"time"
)

const DefaultPacing = time.Second

var errEmptyAddress = errors.New("provider has returned an empty address")

// ReverseGeocoder turns coordinates into an address. Providers are
// asked in a given order, each one is swept through its zoom levels
// before the next provider is asked.
//
// Attempts to the same provider are paced: there is always at least
// pacing delay between the end of one attempt and the start of the next
// one. Nominatim bans clients which do more than 1 request per second.
type ReverseGeocoder struct {
	logger    Logger
	providers []GeoProvider
	stats     []*UsageStats
	pacing    time.Duration
}

// Geocode returns nil if every provider has failed on every zoom level.
// Failure of the whole chain is logged with provider name "geo".
func (g *ReverseGeocoder) Geocode(ctx context.Context, coords Coordinates, language string) *GeocodedAddress {
	attempts := []attempt[GeocodedAddress]{}

	for i := range g.providers {
		provider := g.providers[i]
		levels := provider.ZoomLevels()

		if len(levels) == 0 {
			levels = []int{0}
		}

		for j, zoom := range levels {
			zoom := zoom
			shouldPace := j > 0

			attempts = append(attempts, attempt[GeocodedAddress]{
				name:  provider.Name(),
				stats: g.stats[i],
				call: func(ctx context.Context) (GeocodedAddress, error) {
					if shouldPace {
						if err := g.pace(ctx); err != nil {
							return GeocodedAddress{}, err
						}
					}

					return g.geocode(ctx, provider, GeocodeRequest{
						Coordinates: coords,
						Zoom:        zoom,
						Language:    language,
					})
				},
				onError: func(err error) {
					g.logger.GeocodeError(coords, provider.Name(), zoom, err)
				},
			})
		}
	}

	result, err := firstSuccessful(ctx, chainGeo, attempts)
	if err != nil {
		if len(attempts) > 0 {
			g.logger.GeocodeError(coords, chainGeo, 0, err)
		}

		return nil
	}

	return &result
}

func (g *ReverseGeocoder) geocode(ctx context.Context, provider GeoProvider, req GeocodeRequest) (GeocodedAddress, error) {
	result, err := provider.ReverseGeocode(ctx, req)
	if err != nil {
		return result, err
	}

	if result == (GeocodedAddress{}) {
		return result, errEmptyAddress
	}

	result.CountryCode = NormalizeAlpha2Code(result.CountryCode)

	return result, nil
}

func (g *ReverseGeocoder) pace(ctx context.Context) error {
	if g.pacing <= 0 {
		return nil
	}

	timer := time.NewTimer(g.pacing)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (g *ReverseGeocoder) UsageStats() []*UsageStats {
	return g.stats
}

// NewReverseGeocoder creates a new geocoder. Negative pacing disables
// it, zero means DefaultPacing.
func NewReverseGeocoder(providers []GeoProvider, logger Logger, pacing time.Duration) *ReverseGeocoder {
	if pacing == 0 {
		pacing = DefaultPacing
	}

	rv := &ReverseGeocoder{
		logger:    logger,
		providers: providers,
		stats:     make([]*UsageStats, len(providers)),
		pacing:    pacing,
	}

	for i, v := range providers {
		rv.stats[i] = &UsageStats{Name: v.Name()}
	}

	return rv
}
