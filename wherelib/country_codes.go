package wherelib

import (
	"strings"

	"github.com/pariz/gountries"
)

var countryCodeQuery = gountries.New()

// NormalizeAlpha2Code returns uppercased 2-letter ISO3166 code or empty
// string if the code is not a real country. Some vendors return ZZ,
// EU or AP for 'unknown' or 'somewhere in a region', these are dropped
// as well as codes which gountries does not know. Legacy codes are
// mapped to the current ones.
func NormalizeAlpha2Code(alpha2 string) string {
	alpha2 = strings.ToUpper(strings.TrimSpace(alpha2))

	if len(alpha2) != 2 {
		return ""
	}

	switch alpha2 {
	case "ZZ", "AP", "EU", "XX":
		return ""
	case "FX":
		alpha2 = "FR"
	case "UK":
		alpha2 = "GB"
	}

	if _, ok := countryCodeQuery.Countries[alpha2]; !ok {
		return ""
	}

	return alpha2
}

// CountryName returns a common english name of the country for its
// 2-letter ISO3166 code. Empty string is returned for unknown codes.
func CountryName(alpha2 string) string {
	country, ok := countryCodeQuery.Countries[NormalizeAlpha2Code(alpha2)]
	if !ok {
		return ""
	}

	return country.Name.Common
}
