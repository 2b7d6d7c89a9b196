package providers_test

import (
	"context"
	"net"
	"net/http"
	"sync"
	"testing"

	"github.com/9seconds/whereabouts/providers"
	"github.com/9seconds/whereabouts/wherelib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

type recordingLogger struct {
	mutex   sync.Mutex
	failed  []string
	geoZoom []int
}

func (r *recordingLogger) LookupError(_ net.IP, name string, _ error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.failed = append(r.failed, name)
}

func (r *recordingLogger) GeocodeError(_ wherelib.Coordinates, name string, zoom int, _ error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.failed = append(r.failed, name)
	r.geoZoom = append(r.geoZoom, zoom)
}

func (r *recordingLogger) MergeConflict(_, _, _ string) {}

type ChainTestSuite struct {
	MockedProviderTestSuite

	logger *recordingLogger
}

func (suite *ChainTestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	suite.logger = &recordingLogger{}
}

func (suite *ChainTestSuite) TestIPFallback() {
	httpmock.RegisterResponder("GET", "https://ipwhois.app/json/8.8.8.8?lang=en",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))
	httpmock.RegisterResponder("GET", ipapiURL,
		httpmock.NewStringResponder(http.StatusOK, `{
  "status": "success",
  "country": "United States",
  "countryCode": "us",
  "regionName": "Virginia",
  "city": "Ashburn",
  "query": "8.8.8.8"
}`))

	resolver := wherelib.NewIPResolver([]wherelib.IPProvider{
		providers.NewIPWhois(suite.http, nil),
		providers.NewIPAPI(suite.http),
	}, suite.logger)

	result := resolver.Resolve(context.Background(), net.ParseIP("8.8.8.8"))

	suite.NotNil(result)
	suite.Equal("Virginia", result.Region)
	suite.Equal("Ashburn", result.City)
	suite.Equal("US", result.CountryCode)
	suite.Equal([]string{providers.NameIPWhois}, suite.logger.failed)
}

func (suite *ChainTestSuite) TestGeoFallback() {
	httpmock.RegisterResponder("GET", nominatimURL,
		httpmock.NewStringResponder(http.StatusOK, `{"error": "Unable to geocode"}`))
	httpmock.RegisterResponder("GET", bigDataCloudURL,
		httpmock.NewStringResponder(http.StatusOK, `{
  "latitude": 52.52,
  "longitude": 13.405,
  "countryName": "Germany",
  "countryCode": "DE",
  "principalSubdivision": "Berlin",
  "city": "Berlin",
  "locality": "Mitte",
  "postcode": "10117"
}`))

	geocoder := wherelib.NewReverseGeocoder([]wherelib.GeoProvider{
		providers.NewNominatim(suite.http, []int{18, 10}),
		providers.NewBigDataCloud(suite.http),
	}, suite.logger, -1)

	result := geocoder.Geocode(context.Background(),
		wherelib.Coordinates{Latitude: 52.52, Longitude: 13.405},
		"de")

	suite.NotNil(result)
	suite.Equal("Germany", result.Country)
	suite.Equal("Berlin", result.State)
	suite.Equal("Berlin", result.City)
	suite.Equal("10117", result.PostalCode)
	suite.Equal([]int{18, 10}, suite.logger.geoZoom)
	suite.Equal(2, httpmock.GetCallCountInfo()["GET "+nominatimURL])
}

func TestChain(t *testing.T) {
	suite.Run(t, &ChainTestSuite{})
}
