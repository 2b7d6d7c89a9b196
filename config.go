package main

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/9seconds/whereabouts/providers"
	"github.com/9seconds/whereabouts/wherelib"
	"github.com/hjson/hjson-go"
	"github.com/spf13/afero"
)

const (
	DefaultHTTPTimeout                        = 10 * time.Second
	DefaultRateLimitInterval                  = 100 * time.Millisecond
	DefaultRateLimitBurst                     = 10
	DefaultCacheTTL                           = time.Hour
	DefaultCircuitBreakerOpenThreshold        = 5
	DefaultCircuitBreakerHalfOpenTimeout      = time.Minute
	DefaultCircuitBreakerResetFailuresTimeout = 20 * time.Second
	DefaultUserAgent                          = "whereabouts/" + version
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen          string           `json:"listen"`
	UserAgent       string           `json:"user_agent"`
	WorkerPoolSize  uint             `json:"worker_pool_size"`
	RequestTimeout  duration         `json:"request_timeout"`
	DefaultLanguage string           `json:"default_language"`
	GeocodingPacing duration         `json:"geocoding_pacing"`
	TimezoneFromGPS bool             `json:"timezone_from_gps"`
	BasicAuth       configBasicAuth  `json:"basic_auth"`
	IPProviders     []configProvider `json:"ip_providers"`
	GeoProviders    []configProvider `json:"geo_providers"`
}

func (c config) GetListen() string {
	return c.Listen
}

func (c config) GetUserAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}

	return DefaultUserAgent
}

func (c config) GetWorkerPoolSize() int {
	return int(c.WorkerPoolSize)
}

func (c config) GetRequestTimeout() time.Duration {
	if c.RequestTimeout.Duration == 0 {
		return wherelib.DefaultRequestTimeout
	}

	return c.RequestTimeout.Duration
}

func (c config) GetDefaultLanguage() string {
	if c.DefaultLanguage != "" {
		return c.DefaultLanguage
	}

	return wherelib.DefaultLanguage
}

func (c config) GetGeocodingPacing() time.Duration {
	return c.GeocodingPacing.Duration
}

func (c config) GetTimezoneFromGPS() bool {
	return c.TimezoneFromGPS
}

func (c config) GetBasicAuth() configBasicAuth {
	return c.BasicAuth
}

func (c config) GetIPProviders() []configProvider {
	return c.IPProviders
}

func (c config) GetGeoProviders() []configProvider {
	return c.GeoProviders
}

type configBasicAuth struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

func (c configBasicAuth) Enabled() bool {
	return c.User != ""
}

type configProvider struct {
	Name                               string            `json:"name"`
	RateLimitInterval                  duration          `json:"rate_limit_interval"`
	RateLimitBurst                     uint              `json:"rate_limit_burst"`
	HTTPTimeout                        duration          `json:"http_timeout"`
	CacheSize                          uint              `json:"cache_size"`
	CacheTTL                           duration          `json:"cache_ttl"`
	CircuitBreakerOpenThreshold        uint32            `json:"circuit_breaker_open_threshold"`
	CircuitBreakerHalfOpenTimeout      duration          `json:"circuit_breaker_half_open_timeout"`
	CircuitBreakerResetFailuresTimeout duration          `json:"circuit_breaker_reset_failures_timeout"`
	ZoomLevels                         []int             `json:"zoom_levels"`
	SpecificParameters                 map[string]string `json:"specific_parameters"`
}

func (c configProvider) GetName() string {
	return c.Name
}

func (c configProvider) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration == 0 {
		return DefaultRateLimitInterval
	}

	return c.RateLimitInterval.Duration
}

func (c configProvider) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return DefaultRateLimitBurst
	}

	return int(c.RateLimitBurst)
}

func (c configProvider) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

func (c configProvider) GetCacheSize() uint {
	return c.CacheSize
}

func (c configProvider) GetCacheTTL() time.Duration {
	if c.CacheTTL.Duration == 0 {
		return DefaultCacheTTL
	}

	return c.CacheTTL.Duration
}

func (c configProvider) GetCircuitBreakerOpenThreshold() uint32 {
	if c.CircuitBreakerOpenThreshold == 0 {
		return DefaultCircuitBreakerOpenThreshold
	}

	return c.CircuitBreakerOpenThreshold
}

func (c configProvider) GetCircuitBreakerHalfOpenTimeout() time.Duration {
	if c.CircuitBreakerHalfOpenTimeout.Duration == 0 {
		return DefaultCircuitBreakerHalfOpenTimeout
	}

	return c.CircuitBreakerHalfOpenTimeout.Duration
}

func (c configProvider) GetCircuitBreakerResetFailuresTimeout() time.Duration {
	if c.CircuitBreakerResetFailuresTimeout.Duration == 0 {
		return DefaultCircuitBreakerResetFailuresTimeout
	}

	return c.CircuitBreakerResetFailuresTimeout.Duration
}

func (c configProvider) GetZoomLevels() []int {
	return c.ZoomLevels
}

func (c configProvider) GetSpecificParameters() map[string]string {
	if c.SpecificParameters == nil {
		return map[string]string{}
	}

	return c.SpecificParameters
}

func parseConfig(fs afero.Fs, path string) (*config, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	conf := config{}
	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse json: %w", err)
	}

	rawBytes, _ := json.Marshal(rawMap)

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("incorrect config structure: %w", err)
	}

	if _, _, err := net.SplitHostPort(conf.Listen); err != nil {
		return nil, fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	if len(conf.IPProviders) == 0 && len(conf.GeoProviders) == 0 {
		return nil, wherelib.ErrNoProviders
	}

	if err := validateProviders(conf.IPProviders, map[string]bool{
		providers.NameIPWhois: true,
		providers.NameIPAPI:   true,
		providers.NameMaxmind: true,
	}); err != nil {
		return nil, fmt.Errorf("incorrect ip_providers: %w", err)
	}

	if err := validateProviders(conf.GeoProviders, map[string]bool{
		providers.NameNominatim:    true,
		providers.NameBigDataCloud: true,
	}); err != nil {
		return nil, fmt.Errorf("incorrect geo_providers: %w", err)
	}

	return &conf, nil
}

func validateProviders(confs []configProvider, known map[string]bool) error {
	seenProviderNames := map[string]struct{}{}

	for _, v := range confs {
		if !known[v.GetName()] {
			return fmt.Errorf("unsupported provider name: %s", v.GetName())
		}

		if _, ok := seenProviderNames[v.GetName()]; ok {
			return fmt.Errorf("name %s is duplicated", v.GetName())
		}

		seenProviderNames[v.GetName()] = struct{}{}

		for _, zoom := range v.ZoomLevels {
			if zoom < 0 {
				return fmt.Errorf("incorrect zoom level %d for %s", zoom, v.GetName())
			}
		}
	}

	return nil
}
