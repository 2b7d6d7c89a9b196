package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/9seconds/whereabouts/wherelib"
)

type bigDataCloudResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
	CountryCode          string `json:"countryCode"`
	Postcode             string `json:"postcode"`
}

func (b bigDataCloudResponse) fields() map[string]string {
	return map[string]string{
		"city":                 b.City,
		"locality":             b.Locality,
		"principalSubdivision": b.PrincipalSubdivision,
		"countryName":          b.CountryName,
		"countryCode":          b.CountryCode,
		"postcode":             b.Postcode,
	}
}

type bigDataCloudProvider struct {
	client wherelib.HTTPClient
}

func (b bigDataCloudProvider) Name() string {
	return NameBigDataCloud
}

func (b bigDataCloudProvider) ZoomLevels() []int {
	return nil
}

func (b bigDataCloudProvider) ReverseGeocode(ctx context.Context,
	req wherelib.GeocodeRequest) (wherelib.GeocodedAddress, error) {
	result := wherelib.GeocodedAddress{}
	jsonResponse := bigDataCloudResponse{}
	query := url.Values{}
	language := req.Language

	if language == "" {
		language = wherelib.DefaultLanguage
	}

	query.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	query.Set("localityLanguage", language)

	if err := fetchJSON(ctx, b.client,
		"https://api.bigdatacloud.net/data/reverse-geocode-client?"+query.Encode(),
		nil, &jsonResponse); err != nil {
		return result, err
	}

	result = addressFromFields(jsonResponse.fields())
	if result == (wherelib.GeocodedAddress{}) {
		return result, ErrNoAddress
	}

	return result, nil
}

// NewBigDataCloud returns a secondary reverse geocoder. It has no zoom
// levels and does not require any key.
func NewBigDataCloud(client wherelib.HTTPClient) wherelib.GeoProvider {
	return bigDataCloudProvider{
		client: client,
	}
}
