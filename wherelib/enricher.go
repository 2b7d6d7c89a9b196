package wherelib

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

const (
	DefaultWorkerPoolSize = 4096

	workerPoolExpireTime = time.Minute
)

// EnricherOpts configures Enricher. Logger is optional, errors are
// discarded if it is absent.
type EnricherOpts struct {
	IPProviders     []IPProvider
	GeoProviders    []GeoProvider
	Logger          Logger
	WorkerPoolSize  int
	Pacing          time.Duration
	DefaultLanguage string
	TimezoneFinder  TimezoneFinder
}

type noopLogger struct{}

func (noopLogger) LookupError(_ net.IP, _ string, _ error)              {}
func (noopLogger) GeocodeError(_ Coordinates, _ string, _ int, _ error) {}
func (noopLogger) MergeConflict(_, _, _ string)                         {}

// Enricher builds UserInfo from what is known about a client: its IP,
// user agent and optional GPS coordinates. IP resolution and reverse
// geocoding run concurrently in a worker pool.
type Enricher struct {
	logger          Logger
	ipResolver      *IPResolver
	geocoder        *ReverseGeocoder
	defaultLanguage string
	timezoneFinder  TimezoneFinder
	closeOnce       sync.Once
	workerPool      *ants.Pool
}

// Enrich never fails. Anything that could not be detected is absent in
// the result.
func (e *Enricher) Enrich(ctx context.Context, input EnrichmentInput) UserInfo {
	startedAt := time.Now()

	defer func() {
		metricEnrichTotal.Inc()
		metricEnrichDuration.Observe(time.Since(startedAt).Seconds())
	}()

	var (
		ipLocation *IPLocation
		geocoded   *GeocodedAddress
		gps        *Coordinates
	)

	wg := &sync.WaitGroup{}

	rawIP := strings.TrimSpace(input.IP)

	if ip := net.ParseIP(rawIP); ip != nil {
		wg.Add(1)
		e.run(func() {
			defer wg.Done()

			ipLocation = e.ipResolver.Resolve(ctx, ip)
		})
	} else if rawIP != "" {
		e.logger.LookupError(nil, chainIP, fmt.Errorf("%w: %q", ErrUnknownIP, rawIP))
	}

	if coords, ok := input.Coordinates(); ok {
		gps = &coords
		language := PreferredLanguage(input.AcceptLanguage, e.defaultLanguage)

		wg.Add(1)
		e.run(func() {
			defer wg.Done()

			geocoded = e.geocoder.Geocode(ctx, coords, language)
		})
	}

	device := ClassifyUserAgent(input.UserAgent)

	wg.Wait()

	location, conflicts := reconcile(ipLocation, geocoded, gps)

	for _, v := range conflicts {
		e.logger.MergeConflict(v.field, v.kept, v.dropped)
	}

	if gps != nil && e.timezoneFinder != nil {
		fillTimezone(&location, e.timezoneFinder.TimezoneName(*gps))
	}

	rv := UserInfo{
		IP:             input.IP,
		UserAgent:      input.UserAgent,
		AcceptLanguage: input.AcceptLanguage,
		Location:       location,
		Device:         device,
		Timestamp:      input.Timestamp,
	}

	if ipLocation != nil {
		rv.ISP = ipLocation.ISP

		if rv.ISP.Provider == "" {
			rv.ISP.Provider = rv.ISP.ISP
		}
	}

	return rv
}

// run schedules a task in the worker pool. If pool refuses a task (it
// is closed or overloaded), a task is executed in its own goroutine.
func (e *Enricher) run(task func()) {
	if err := e.workerPool.Submit(task); err != nil {
		go task()
	}
}

func (e *Enricher) UsageStats() []*UsageStats {
	rv := make([]*UsageStats, 0, len(e.ipResolver.UsageStats())+len(e.geocoder.UsageStats()))

	rv = append(rv, e.ipResolver.UsageStats()...)
	rv = append(rv, e.geocoder.UsageStats()...)

	return rv
}

func (e *Enricher) Shutdown() {
	e.closeOnce.Do(func() {
		e.workerPool.Release()
	})
}

func NewEnricher(opts EnricherOpts) (*Enricher, error) {
	if len(opts.IPProviders) == 0 && len(opts.GeoProviders) == 0 {
		return nil, ErrNoProviders
	}

	poolSize := opts.WorkerPoolSize
	if poolSize <= 0 {
		poolSize = DefaultWorkerPoolSize
	}

	pool, err := ants.NewPool(poolSize,
		ants.WithExpiryDuration(workerPoolExpireTime),
		ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	language := opts.DefaultLanguage
	if language == "" {
		language = DefaultLanguage
	}

	return &Enricher{
		logger:          logger,
		ipResolver:      NewIPResolver(opts.IPProviders, logger),
		geocoder:        NewReverseGeocoder(opts.GeoProviders, logger, opts.Pacing),
		defaultLanguage: language,
		timezoneFinder:  opts.TimezoneFinder,
		workerPool:      pool,
	}, nil
}
