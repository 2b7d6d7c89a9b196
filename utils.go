package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/9seconds/whereabouts/providers"
	"github.com/9seconds/whereabouts/wherelib"
	"github.com/spf13/afero"
)

type shutdowner interface {
	Shutdown()
}

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

// makeIPProviders returns providers in the order of config. Offline
// providers hold resources so they are returned as shutdowners too.
func makeIPProviders(fs afero.Fs, conf *config,
	updateLogger providers.UpdateLogger) ([]wherelib.IPProvider, []shutdowner, error) {
	rv := make([]wherelib.IPProvider, 0, len(conf.GetIPProviders()))
	toShutdown := []shutdowner{}

	for _, v := range conf.GetIPProviders() {
		var prov wherelib.IPProvider

		switch v.GetName() {
		case providers.NameIPWhois:
			prov = providers.NewIPWhois(makeNewHTTPClient(conf, v), v.GetSpecificParameters())
		case providers.NameIPAPI:
			prov = providers.NewIPAPI(makeNewHTTPClient(conf, v))
		case providers.NameMaxmind:
			maxmind, err := providers.NewMaxmind(fs, v.GetSpecificParameters(), updateLogger)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot create maxmind provider: %w", err)
			}

			if vv, ok := maxmind.(shutdowner); ok {
				toShutdown = append(toShutdown, vv)
			}

			prov = maxmind
		default:
			return nil, nil, fmt.Errorf("unsupported provider name: %s", v.GetName())
		}

		if v.GetCacheSize() > 0 {
			cached, err := wherelib.NewCachingIPProvider(prov, v.GetCacheSize(), v.GetCacheTTL())
			if err != nil {
				return nil, nil, fmt.Errorf("cannot create a cache for %s: %w", v.GetName(), err)
			}

			prov = cached
		}

		rv = append(rv, prov)
	}

	return rv, toShutdown, nil
}

func makeGeoProviders(conf *config) ([]wherelib.GeoProvider, error) {
	rv := make([]wherelib.GeoProvider, 0, len(conf.GetGeoProviders()))

	for _, v := range conf.GetGeoProviders() {
		var prov wherelib.GeoProvider

		switch v.GetName() {
		case providers.NameNominatim:
			prov = providers.NewNominatim(makeNewHTTPClient(conf, v), v.GetZoomLevels())
		case providers.NameBigDataCloud:
			prov = providers.NewBigDataCloud(makeNewHTTPClient(conf, v))
		default:
			return nil, fmt.Errorf("unsupported provider name: %s", v.GetName())
		}

		if v.GetCacheSize() > 0 {
			cached, err := wherelib.NewCachingGeoProvider(prov, v.GetCacheSize(), v.GetCacheTTL())
			if err != nil {
				return nil, fmt.Errorf("cannot create a cache for %s: %w", v.GetName(), err)
			}

			prov = cached
		}

		rv = append(rv, prov)
	}

	return rv, nil
}

func makeNewHTTPClient(conf *config, provConf configProvider) wherelib.HTTPClient {
	httpClient := &http.Client{
		Timeout: provConf.GetHTTPTimeout(),
	}

	return wherelib.NewHTTPClient(httpClient,
		provConf.GetName(),
		conf.GetUserAgent(),
		provConf.GetRateLimitInterval(),
		provConf.GetRateLimitBurst(),
		provConf.GetCircuitBreakerOpenThreshold(),
		provConf.GetCircuitBreakerHalfOpenTimeout(),
		provConf.GetCircuitBreakerResetFailuresTimeout())
}
