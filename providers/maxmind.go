package providers

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/9seconds/whereabouts/wherelib"
	"github.com/oschwald/geoip2-golang"
	"github.com/spf13/afero"
)

const maxmindDefaultLanguage = "en"

type maxmindProvider struct {
	language     string
	watcher      *dbWatcher
	dbReader     *geoip2.Reader
	dbReaderLock sync.RWMutex
}

func (m *maxmindProvider) Name() string {
	return NameMaxmind
}

func (m *maxmindProvider) Lookup(ctx context.Context, ip net.IP) (wherelib.IPLocation, error) {
	m.dbReaderLock.RLock()
	defer m.dbReaderLock.RUnlock()

	rv := wherelib.IPLocation{}

	if err := ctx.Err(); err != nil {
		return rv, err
	}

	if m.dbReader == nil {
		return rv, ErrProviderFailed
	}

	record, err := m.dbReader.City(ip)
	if err != nil {
		return rv, fmt.Errorf("cannot lookup this ip address: %w", err)
	}

	rv.Country = cleanString(m.localize(record.Country.Names))
	rv.CountryCode = cleanString(record.Country.IsoCode)
	rv.Continent = cleanString(m.localize(record.Continent.Names))
	rv.ContinentCode = cleanString(record.Continent.Code)
	rv.City = cleanString(m.localize(record.City.Names))
	rv.PostalCode = cleanString(record.Postal.Code)
	rv.Timezone.ID = cleanString(record.Location.TimeZone)

	if len(record.Subdivisions) > 0 {
		rv.Region = cleanString(m.localize(record.Subdivisions[0].Names))
	}

	// 0,0 is what database returns for unknown locations
	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		lat := record.Location.Latitude
		lng := record.Location.Longitude
		rv.Latitude = &lat
		rv.Longitude = &lng
	}

	return rv, nil
}

func (m *maxmindProvider) localize(names map[string]string) string {
	if value, ok := names[m.language]; ok {
		return value
	}

	return names[maxmindDefaultLanguage]
}

func (m *maxmindProvider) open(content []byte) error {
	reader, err := geoip2.FromBytes(content)
	if err != nil {
		return fmt.Errorf("cannot initialize a reader of maxminddb: %w", err)
	}

	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader != nil {
		m.dbReader.Close()
	}

	m.dbReader = reader

	return nil
}

func (m *maxmindProvider) Shutdown() {
	m.watcher.Shutdown()

	m.dbReaderLock.Lock()
	defer m.dbReaderLock.Unlock()

	if m.dbReader != nil {
		m.dbReader.Close()
		m.dbReader = nil
	}
}

// NewMaxmind returns an offline IP provider which works with a local
// GeoIP2 or GeoLite2 City database. This provider is useful as a last
// resort if online vendors are unavailable. Supported parameters:
//
// path - a path to mmdb file, required.
//
// lang - a language of names, en by default.
//
// check_every - how often to check if database file was changed, like
// 1h. Database is never reloaded by default.
func NewMaxmind(fs afero.Fs, parameters map[string]string, logger UpdateLogger) (wherelib.IPProvider, error) {
	path := parameters["path"]
	if path == "" {
		return nil, ErrDatabasePathIsRequired
	}

	var checkEvery time.Duration

	if value := parameters["check_every"]; value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("incorrect check_every value: %w", err)
		}

		checkEvery = parsed
	}

	language := parameters["lang"]
	if language == "" {
		language = maxmindDefaultLanguage
	}

	rv := &maxmindProvider{
		language: language,
	}
	rv.watcher = newDBWatcher(NameMaxmind, fs, path, checkEvery, logger, rv.open)

	if err := rv.watcher.Start(); err != nil {
		return nil, err
	}

	return rv, nil
}
