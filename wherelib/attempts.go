package wherelib

import (
	"context"
	"fmt"
	"time"
)

const (
	chainIP  = "ip"
	chainGeo = "geo"
)

// attempt is a single step of a fallback chain: a provider call and
// a normalizer which are hidden behind call.
type attempt[T any] struct {
	name    string
	stats   *UsageStats
	call    func(context.Context) (T, error)
	onError func(error)
}

// firstSuccessful runs attempts one by one and returns a result of the
// first one which has succeeded. Failures of attempts are reported to
// onError. If every attempt has failed, ErrAllProvidersFailed is
// returned. If context is closed, the rest of the chain is skipped and
// context error is returned.
func firstSuccessful[T any](ctx context.Context, chain string, attempts []attempt[T]) (T, error) {
	var empty T

	if len(attempts) == 0 {
		return empty, ErrNoProviders
	}

	for _, v := range attempts {
		if err := ctx.Err(); err != nil {
			metricChainExhausted.WithLabelValues(chain).Inc()

			return empty, fmt.Errorf("chain %s is interrupted: %w", chain, err)
		}

		startedAt := time.Now()
		result, err := v.call(ctx)

		metricProviderDuration.WithLabelValues(v.name).Observe(time.Since(startedAt).Seconds())

		if v.stats != nil {
			v.stats.Used(err)
		}

		if err == nil {
			metricProviderRequests.WithLabelValues(v.name, "ok").Inc()

			return result, nil
		}

		metricProviderRequests.WithLabelValues(v.name, "fail").Inc()

		if v.onError != nil {
			v.onError(err)
		}
	}

	metricChainExhausted.WithLabelValues(chain).Inc()

	return empty, ErrAllProvidersFailed
}
