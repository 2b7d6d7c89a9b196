package wherelib

import (
	"context"
	"errors"
	"net"
)

var errEmptyIPLocation = errors.New("provider has returned an empty location")

// IPResolver asks IP providers in a given order and returns the first
// meaningful answer.
type IPResolver struct {
	logger    Logger
	providers []IPProvider
	stats     []*UsageStats
}

// Resolve returns nil if every provider has failed. Errors are logged,
// not returned. Failure of the whole chain is logged with provider name
// "ip".
func (r *IPResolver) Resolve(ctx context.Context, ip net.IP) *IPLocation {
	attempts := make([]attempt[IPLocation], 0, len(r.providers))

	for i := range r.providers {
		provider := r.providers[i]

		attempts = append(attempts, attempt[IPLocation]{
			name:  provider.Name(),
			stats: r.stats[i],
			call: func(ctx context.Context) (IPLocation, error) {
				return r.lookup(ctx, provider, ip)
			},
			onError: func(err error) {
				r.logger.LookupError(ip, provider.Name(), err)
			},
		})
	}

	result, err := firstSuccessful(ctx, chainIP, attempts)
	if err != nil {
		if len(attempts) > 0 {
			r.logger.LookupError(ip, chainIP, err)
		}

		return nil
	}

	return &result
}

func (r *IPResolver) lookup(ctx context.Context, provider IPProvider, ip net.IP) (IPLocation, error) {
	result, err := provider.Lookup(ctx, ip)
	if err != nil {
		return result, err
	}

	if result == (IPLocation{}) {
		return result, errEmptyIPLocation
	}

	result.CountryCode = NormalizeAlpha2Code(result.CountryCode)

	return result, nil
}

func (r *IPResolver) UsageStats() []*UsageStats {
	return r.stats
}

func NewIPResolver(providers []IPProvider, logger Logger) *IPResolver {
	rv := &IPResolver{
		logger:    logger,
		providers: providers,
		stats:     make([]*UsageStats, len(providers)),
	}

	for i, v := range providers {
		rv.stats[i] = &UsageStats{Name: v.Name()}
	}

	return rv
}
