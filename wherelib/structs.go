package wherelib

import (
	"math"
	"strconv"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Valid() bool {
	switch {
	case math.IsNaN(c.Latitude), math.IsNaN(c.Longitude):
		return false
	case math.IsInf(c.Latitude, 0), math.IsInf(c.Longitude, 0):
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// EnrichmentInput is what caller knows about a client. Latitude and
// Longitude come from a browser and are used only if both are present.
type EnrichmentInput struct {
	IP             string
	UserAgent      string
	Latitude       *float64
	Longitude      *float64
	AcceptLanguage string
	Timestamp      string
}

// Coordinates returns GPS coordinates if caller has supplied both of
// them and they make sense.
func (e EnrichmentInput) Coordinates() (Coordinates, bool) {
	if e.Latitude == nil || e.Longitude == nil {
		return Coordinates{}, false
	}

	coords := Coordinates{
		Latitude:  *e.Latitude,
		Longitude: *e.Longitude,
	}

	return coords, coords.Valid()
}

type Timezone struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbr,omitempty"`
	GMT          string `json:"gmt,omitempty"`
	Offset       *int   `json:"offset,omitempty"`
	GMTOffset    *int   `json:"gmtOffset,omitempty"`
	DSTOffset    *int   `json:"dstOffset,omitempty"`
	IsDST        *bool  `json:"isDST,omitempty"`
}

type Currency struct {
	Code   string   `json:"code,omitempty"`
	Name   string   `json:"name,omitempty"`
	Symbol string   `json:"symbol,omitempty"`
	Plural string   `json:"plural,omitempty"`
	Rate   *float64 `json:"rates,omitempty"`
}

type ISPInfo struct {
	ASN      string `json:"asn,omitempty"`
	Org      string `json:"org,omitempty"`
	ISP      string `json:"isp,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// IPLocation is a normalized response of IP provider. Empty string or
// nil pointer means that provider knows nothing about this field.
type IPLocation struct {
	Country           string
	CountryCode       string
	Continent         string
	ContinentCode     string
	Region            string
	City              string
	PostalCode        string
	Latitude          *float64
	Longitude         *float64
	CountryFlag       string
	CountryCapital    string
	CountryPhone      string
	CountryNeighbours string
	Timezone          Timezone
	Currency          Currency
	ISP               ISPInfo
}

// GeocodedAddress is a normalized response of geo provider.
type GeocodedAddress struct {
	Country       string
	CountryCode   string
	State         string
	Region        string
	Province      string
	District      string
	County        string
	City          string
	Town          string
	Village       string
	Municipality  string
	Suburb        string
	Neighbourhood string
	Quarter       string
	CityDistrict  string
	Road          string
	Street        string
	HouseNumber   string
	HouseName     string
	PostalCode    string
	Postcode      string
	Amenity       string
	Building      string
	Shop          string
	DisplayName   string
}

// LocationInfo is a union of IPLocation and GeocodedAddress fields.
type LocationInfo struct {
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
	Country           string    `json:"country,omitempty"`
	CountryCode       string    `json:"countryCode,omitempty"`
	Continent         string    `json:"continent,omitempty"`
	ContinentCode     string    `json:"continentCode,omitempty"`
	State             string    `json:"state,omitempty"`
	Region            string    `json:"region,omitempty"`
	Province          string    `json:"province,omitempty"`
	District          string    `json:"district,omitempty"`
	County            string    `json:"county,omitempty"`
	City              string    `json:"city,omitempty"`
	Town              string    `json:"town,omitempty"`
	Village           string    `json:"village,omitempty"`
	Municipality      string    `json:"municipality,omitempty"`
	Suburb            string    `json:"suburb,omitempty"`
	Neighbourhood     string    `json:"neighbourhood,omitempty"`
	Quarter           string    `json:"quarter,omitempty"`
	CityDistrict      string    `json:"cityDistrict,omitempty"`
	Road              string    `json:"road,omitempty"`
	Street            string    `json:"street,omitempty"`
	HouseNumber       string    `json:"houseNumber,omitempty"`
	HouseName         string    `json:"houseName,omitempty"`
	PostalCode        string    `json:"postalCode,omitempty"`
	Postcode          string    `json:"postcode,omitempty"`
	Amenity           string    `json:"amenity,omitempty"`
	Building          string    `json:"building,omitempty"`
	Shop              string    `json:"shop,omitempty"`
	Address           string    `json:"address,omitempty"`
	DisplayName       string    `json:"displayName,omitempty"`
	CountryFlag       string    `json:"countryFlag,omitempty"`
	CountryCapital    string    `json:"countryCapital,omitempty"`
	CountryPhone      string    `json:"countryPhone,omitempty"`
	CountryNeighbours string    `json:"countryNeighbours,omitempty"`
	Timezone          *Timezone `json:"timezone,omitempty"`
	Currency          *Currency `json:"currency,omitempty"`
}

type DeviceInfo struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion"`
	OS             string `json:"os"`
	OSVersion      string `json:"osVersion"`
	DeviceType     string `json:"deviceType"`
	Device         string `json:"device"`
}

type UserInfo struct {
	IP             string       `json:"ip,omitempty"`
	UserAgent      string       `json:"userAgent,omitempty"`
	AcceptLanguage string       `json:"acceptLanguage,omitempty"`
	Location       LocationInfo `json:"location"`
	ISP            ISPInfo      `json:"isp"`
	Device         DeviceInfo   `json:"device"`
	Timestamp      string       `json:"timestamp,omitempty"`
}

type GeocodeRequest struct {
	Coordinates

	Zoom     int
	Language string
}
