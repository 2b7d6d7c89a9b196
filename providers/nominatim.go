package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/9seconds/whereabouts/wherelib"
)

// DefaultNominatimZoomLevels are tried one by one, from a building
// level to a town level.
var DefaultNominatimZoomLevels = []int{18, 16, 14, 12}

type nominatimResponse struct {
	Error       string                 `json:"error"`
	DisplayName string                 `json:"display_name"`
	Address     map[string]interface{} `json:"address"`
}

type nominatimProvider struct {
	zoomLevels []int
	client     wherelib.HTTPClient
}

func (n nominatimProvider) Name() string {
	return NameNominatim
}

func (n nominatimProvider) ZoomLevels() []int {
	return n.zoomLevels
}

func (n nominatimProvider) ReverseGeocode(ctx context.Context,
	req wherelib.GeocodeRequest) (wherelib.GeocodedAddress, error) {
	result := wherelib.GeocodedAddress{}
	jsonResponse := nominatimResponse{}
	query := url.Values{}
	language := req.Language

	if language == "" {
		language = wherelib.DefaultLanguage
	}

	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	query.Set("addressdetails", "1")
	query.Set("extratags", "1")
	query.Set("namedetails", "1")
	query.Set("accept-language", language)

	if req.Zoom > 0 {
		query.Set("zoom", strconv.Itoa(req.Zoom))
	}

	if err := fetchJSON(ctx, n.client,
		"https://nominatim.openstreetmap.org/reverse?"+query.Encode(),
		map[string]string{"Accept-Language": language},
		&jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Error != "" {
		return result, fmt.Errorf("%w: %s", ErrProviderFailed, jsonResponse.Error)
	}

	if len(jsonResponse.Address) == 0 {
		return result, ErrNoAddress
	}

	result = addressFromFields(stringifyFields(jsonResponse.Address))
	result.DisplayName = cleanString(jsonResponse.DisplayName)

	return result, nil
}

// NewNominatim returns a primary reverse geocoder. Please pay attention
// that Nominatim requires a meaningful User-Agent which identifies your
// application and at most 1 request per second.
//
// If zoomLevels are empty, DefaultNominatimZoomLevels are used.
func NewNominatim(client wherelib.HTTPClient, zoomLevels []int) wherelib.GeoProvider {
	if len(zoomLevels) == 0 {
		zoomLevels = DefaultNominatimZoomLevels
	}

	levels := make([]int, len(zoomLevels))
	copy(levels, zoomLevels)

	return nominatimProvider{
		zoomLevels: levels,
		client:     client,
	}
}
