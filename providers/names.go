package providers

const (
	// Identifier for ipwhois.app. This is a primary IP provider.
	NameIPWhois = "ipwhois"

	// Identifier for ip-api.com.
	NameIPAPI = "ipapi"

	// Identifier for MaxMind GeoIP2/GeoLite2 City databases.
	NameMaxmind = "maxmind"

	// Identifier for nominatim.openstreetmap.org. This is a primary
	// reverse geocoder.
	NameNominatim = "nominatim"

	// Identifier for bigdatacloud.net free client-side geocoder.
	NameBigDataCloud = "bigdatacloud"
)
