package wherelib

import (
	"context"
	"net"
	"net/http"
)

// IPProvider resolves IP address into a location. Any error means that
// Enricher has to try the next provider in a chain.
type IPProvider interface {
	Name() string
	Lookup(context.Context, net.IP) (IPLocation, error)
}

// GeoProvider resolves GPS coordinates into a postal address.
//
// ZoomLevels returns a list of precision levels to try, finest first.
// An empty list means that a provider has no notion of zoom and is
// asked only once with a zero zoom.
type GeoProvider interface {
	Name() string
	ZoomLevels() []int
	ReverseGeocode(context.Context, GeocodeRequest) (GeocodedAddress, error)
}

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Logger interface {
	LookupError(ip net.IP, name string, err error)
	GeocodeError(coords Coordinates, name string, zoom int, err error)
	MergeConflict(field, kept, dropped string)
}

// TimezoneFinder detects IANA timezone of coordinates. Empty string
// means that timezone is unknown.
type TimezoneFinder interface {
	TimezoneName(Coordinates) string
}
