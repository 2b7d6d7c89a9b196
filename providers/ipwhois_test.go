package providers_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/9seconds/whereabouts/providers"
	"github.com/9seconds/whereabouts/wherelib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

const ipwhoisOkResponse = `{
  "ip": "8.8.8.8",
  "success": true,
  "type": "IPv4",
  "continent": "North America",
  "continent_code": "NA",
  "country": "United States",
  "country_code": "US",
  "country_flag": "https://cdn.ipwhois.io/flags/us.svg",
  "country_capital": "Washington",
  "country_phone": "+1",
  "country_neighbours": "CA,MX,CU",
  "region": "California",
  "city": "Mountain View",
  "latitude": 37.3860517,
  "longitude": -122.0838511,
  "asn": "AS15169",
  "org": "Google LLC",
  "isp": "Google LLC",
  "domain": "",
  "timezone": "America/Los_Angeles",
  "timezone_name": "Pacific Standard Time",
  "timezone_dstOffset": 0,
  "timezone_gmtOffset": -28800,
  "timezone_gmt": "-08:00",
  "currency": "US Dollar",
  "currency_code": "USD",
  "currency_symbol": "$",
  "currency_rates": 1,
  "currency_plural": "US dollars"
}`

type MockedIPWhoisTestSuite struct {
	MockedProviderTestSuite

	prov wherelib.IPProvider
}

func (suite *MockedIPWhoisTestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	suite.prov = providers.NewIPWhois(suite.http, map[string]string{})
}

func (suite *MockedIPWhoisTestSuite) TestName() {
	suite.Equal(providers.NameIPWhois, suite.prov.Name())
}

func (suite *MockedIPWhoisTestSuite) TestLookupClosedContext() {
	ctx, cancel := context.WithCancel(context.Background())

	cancel()

	_, err := suite.prov.Lookup(ctx, net.ParseIP("8.8.8.8"))

	suite.Error(err)
}

func (suite *MockedIPWhoisTestSuite) TestLookupFailed() {
	httpmock.RegisterResponder("GET",
		"https://ipwhois.app/json/8.8.8.8?lang=en",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := suite.prov.Lookup(context.Background(), net.ParseIP("8.8.8.8"))

	suite.Error(err)
}

func (suite *MockedIPWhoisTestSuite) TestLookupBadJSON() {
	httpmock.RegisterResponder("GET",
		"https://ipwhois.app/json/8.8.8.8?lang=en",
		httpmock.NewStringResponder(http.StatusOK, `{[`))

	_, err := suite.prov.Lookup(context.Background(), net.ParseIP("8.8.8.8"))

	suite.Error(err)
}

func (suite *MockedIPWhoisTestSuite) TestLookupFailureFlag() {
	httpmock.RegisterResponder("GET",
		"https://ipwhois.app/json/8.8.8.8?lang=en",
		httpmock.NewStringResponder(http.StatusOK,
			`{"success": false, "message": "reserved range"}`))

	_, err := suite.prov.Lookup(context.Background(), net.ParseIP("8.8.8.8"))

	suite.True(errors.Is(err, providers.ErrProviderFailed))
	suite.Contains(err.Error(), "reserved range")
}

func (suite *MockedIPWhoisTestSuite) TestLookupOk() {
	httpmock.RegisterResponder("GET",
		"https://ipwhois.app/json/8.8.8.8?lang=en",
		httpmock.NewStringResponder(http.StatusOK, ipwhoisOkResponse))

	result, err := suite.prov.Lookup(context.Background(), net.ParseIP("8.8.8.8"))

	suite.NoError(err)
	suite.Equal("United States", result.Country)
	suite.Equal("US", result.CountryCode)
	suite.Equal("NA", result.ContinentCode)
	suite.Equal("California", result.Region)
	suite.Equal("Mountain View", result.City)
	suite.Equal("+1", result.CountryPhone)
	suite.InDelta(37.3860517, *result.Latitude, 0.000001)
	suite.InDelta(-122.0838511, *result.Longitude, 0.000001)
	suite.Equal("AS15169", result.ISP.ASN)
	suite.Equal("Google LLC", result.ISP.ISP)
	suite.Empty(result.ISP.Domain)
	suite.Equal("America/Los_Angeles", result.Timezone.ID)
	suite.Equal("Pacific Standard Time", result.Timezone.Abbreviation)
	suite.Equal(-28800, *result.Timezone.Offset)
	suite.False(*result.Timezone.IsDST)
	suite.Equal("USD", result.Currency.Code)
	suite.Equal("US dollars", result.Currency.Plural)
	suite.InDelta(1.0, *result.Currency.Rate, 0.000001)
}

type IntegrationIPWhoisTestSuite struct {
	ProviderTestSuite

	prov wherelib.IPProvider
}

func (suite *IntegrationIPWhoisTestSuite) SetupTest() {
	suite.ProviderTestSuite.SetupTest()

	suite.prov = providers.NewIPWhois(suite.http, map[string]string{})
}

func (suite *IntegrationIPWhoisTestSuite) TestLookup() {
	result, err := suite.prov.Lookup(context.Background(), net.ParseIP("8.8.8.8"))

	suite.NoError(err)
	suite.Equal("US", result.CountryCode)
}

func TestIPWhois(t *testing.T) {
	suite.Run(t, &MockedIPWhoisTestSuite{})
}

func TestIntegrationIPWhois(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipped because of the short mode")
		return
	}

	suite.Run(t, &IntegrationIPWhoisTestSuite{})
}
