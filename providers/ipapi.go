package providers

import (
	"context"
	"fmt"
	"net"

	"github.com/9seconds/whereabouts/wherelib"
)

const (
	ipapiStatusFail = "fail"
	ipapiFields     = "status,message,country,countryCode,regionName,city,zip,lat,lon,timezone,isp,org,as,query"
)

type ipapiResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode"`
	RegionName  string   `json:"regionName"`
	City        string   `json:"city"`
	Zip         string   `json:"zip"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Timezone    string   `json:"timezone"`
	ISP         string   `json:"isp"`
	Org         string   `json:"org"`
	AS          string   `json:"as"`
}

type ipapiProvider struct {
	client wherelib.HTTPClient
}

func (i ipapiProvider) Name() string {
	return NameIPAPI
}

func (i ipapiProvider) Lookup(ctx context.Context, ip net.IP) (wherelib.IPLocation, error) {
	result := wherelib.IPLocation{}
	jsonResponse := ipapiResponse{}

	// free tier of ip-api.com does not support https
	if err := fetchJSON(ctx, i.client,
		"http://ip-api.com/json/"+ip.String()+"?fields="+ipapiFields,
		nil, &jsonResponse); err != nil {
		return result, err
	}

	if jsonResponse.Status == ipapiStatusFail {
		return result, fmt.Errorf("%w: %s", ErrProviderFailed, jsonResponse.Message)
	}

	result.Country = cleanString(jsonResponse.Country)
	result.CountryCode = cleanString(jsonResponse.CountryCode)
	result.Region = cleanString(jsonResponse.RegionName)
	result.City = cleanString(jsonResponse.City)
	result.PostalCode = cleanString(jsonResponse.Zip)
	result.Latitude = cleanFloat(jsonResponse.Lat)
	result.Longitude = cleanFloat(jsonResponse.Lon)
	result.Timezone.ID = cleanString(jsonResponse.Timezone)
	result.ISP.ISP = cleanString(jsonResponse.ISP)
	result.ISP.Org = cleanString(jsonResponse.Org)
	result.ISP.ASN = cleanString(jsonResponse.AS)

	return result, nil
}

func NewIPAPI(client wherelib.HTTPClient) wherelib.IPProvider {
	return ipapiProvider{
		client: client,
	}
}
