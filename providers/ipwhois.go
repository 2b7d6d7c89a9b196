package providers

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/9seconds/whereabouts/wherelib"
)

const ipwhoisDefaultLanguage = "en"

type ipwhoisResponse struct {
	Success           *bool    `json:"success"`
	Message           string   `json:"message"`
	Continent         string   `json:"continent"`
	ContinentCode     string   `json:"continent_code"`
	Country           string   `json:"country"`
	CountryCode       string   `json:"country_code"`
	CountryFlag       string   `json:"country_flag"`
	CountryCapital    string   `json:"country_capital"`
	CountryPhone      string   `json:"country_phone"`
	CountryNeighbours string   `json:"country_neighbours"`
	Region            string   `json:"region"`
	City              string   `json:"city"`
	Postal            string   `json:"postal"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	ASN               string   `json:"asn"`
	Org               string   `json:"org"`
	ISP               string   `json:"isp"`
	Domain            string   `json:"domain"`
	Timezone          string   `json:"timezone"`
	TimezoneName      string   `json:"timezone_name"`
	TimezoneGMT       string   `json:"timezone_gmt"`
	TimezoneGMTOffset *float64 `json:"timezone_gmtOffset"`
	TimezoneDSTOffset *float64 `json:"timezone_dstOffset"`
	Currency          string   `json:"currency"`
	CurrencyCode      string   `json:"currency_code"`
	CurrencySymbol    string   `json:"currency_symbol"`
	CurrencyRates     *float64 `json:"currency_rates"`
	CurrencyPlural    string   `json:"currency_plural"`
}

type ipwhoisProvider struct {
	language string
	client   wherelib.HTTPClient
}

func (i ipwhoisProvider) Name() string {
	return NameIPWhois
}

func (i ipwhoisProvider) Lookup(ctx context.Context, ip net.IP) (wherelib.IPLocation, error) {
	result := wherelib.IPLocation{}
	jsonResponse := ipwhoisResponse{}
	query := url.Values{}

	query.Set("lang", i.language)

	if err := fetchJSON(ctx, i.client,
		"https://ipwhois.app/json/"+ip.String()+"?"+query.Encode(),
		nil, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Success != nil && !*jsonResponse.Success {
		return result, fmt.Errorf("%w: %s", ErrProviderFailed, jsonResponse.Message)
	}

	result.Continent = cleanString(jsonResponse.Continent)
	result.ContinentCode = cleanString(jsonResponse.ContinentCode)
	result.Country = cleanString(jsonResponse.Country)
	result.CountryCode = cleanString(jsonResponse.CountryCode)
	result.CountryFlag = cleanString(jsonResponse.CountryFlag)
	result.CountryCapital = cleanString(jsonResponse.CountryCapital)
	result.CountryPhone = cleanString(jsonResponse.CountryPhone)
	result.CountryNeighbours = cleanString(jsonResponse.CountryNeighbours)
	result.Region = cleanString(jsonResponse.Region)
	result.City = cleanString(jsonResponse.City)
	result.PostalCode = cleanString(jsonResponse.Postal)
	result.Latitude = cleanFloat(jsonResponse.Latitude)
	result.Longitude = cleanFloat(jsonResponse.Longitude)

	result.ISP.ASN = cleanString(jsonResponse.ASN)
	result.ISP.Org = cleanString(jsonResponse.Org)
	result.ISP.ISP = cleanString(jsonResponse.ISP)
	result.ISP.Domain = cleanString(jsonResponse.Domain)

	result.Timezone.ID = cleanString(jsonResponse.Timezone)
	result.Timezone.Name = cleanString(jsonResponse.TimezoneName)
	result.Timezone.Abbreviation = result.Timezone.Name
	result.Timezone.GMT = cleanString(jsonResponse.TimezoneGMT)
	result.Timezone.Offset = floatToInt(jsonResponse.TimezoneGMTOffset)
	result.Timezone.GMTOffset = floatToInt(jsonResponse.TimezoneGMTOffset)
	result.Timezone.DSTOffset = floatToInt(jsonResponse.TimezoneDSTOffset)

	if result.Timezone.DSTOffset != nil {
		isDST := *result.Timezone.DSTOffset > 0
		result.Timezone.IsDST = &isDST
	}

	result.Currency.Code = cleanString(jsonResponse.CurrencyCode)
	result.Currency.Name = cleanString(jsonResponse.Currency)
	result.Currency.Symbol = cleanString(jsonResponse.CurrencySymbol)
	result.Currency.Rate = cleanFloat(jsonResponse.CurrencyRates)
	result.Currency.Plural = cleanString(jsonResponse.CurrencyPlural)

	return result, nil
}

// NewIPWhois returns a primary IP provider. Supported parameters:
//
// lang - a language of names in responses, en by default.
func NewIPWhois(client wherelib.HTTPClient, parameters map[string]string) wherelib.IPProvider {
	language := parameters["lang"]
	if language == "" {
		language = ipwhoisDefaultLanguage
	}

	return ipwhoisProvider{
		language: language,
		client:   client,
	}
}
