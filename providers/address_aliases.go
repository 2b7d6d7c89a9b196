package providers

import "github.com/9seconds/whereabouts/wherelib"

type addressAlias struct {
	aliases []string
	set     func(*wherelib.GeocodedAddress, string)
}

// addressAliases maps vendor keys to fields of GeocodedAddress. For
// each field the first non-empty alias wins so order matters.
var addressAliases = []addressAlias{
	{
		aliases: []string{"country", "countryName"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Country = v },
	},
	{
		aliases: []string{"country_code", "countryCode"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.CountryCode = v },
	},
	{
		aliases: []string{"state", "province", "principalSubdivision"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.State = v },
	},
	{
		aliases: []string{"region"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Region = v },
	},
	{
		aliases: []string{"province"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Province = v },
	},
	{
		aliases: []string{"district", "state_district"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.District = v },
	},
	{
		aliases: []string{"county"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.County = v },
	},
	{
		aliases: []string{"city", "town", "village", "municipality", "locality"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.City = v },
	},
	{
		aliases: []string{"town"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Town = v },
	},
	{
		aliases: []string{"village"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Village = v },
	},
	{
		aliases: []string{"municipality"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Municipality = v },
	},
	{
		aliases: []string{"suburb"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Suburb = v },
	},
	{
		aliases: []string{"neighbourhood", "neighborhood"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Neighbourhood = v },
	},
	{
		aliases: []string{"quarter"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Quarter = v },
	},
	{
		aliases: []string{"city_district"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.CityDistrict = v },
	},
	{
		aliases: []string{"road"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Road = v },
	},
	{
		aliases: []string{"street"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Street = v },
	},
	{
		aliases: []string{"house_number"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.HouseNumber = v },
	},
	{
		aliases: []string{"house_name"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.HouseName = v },
	},
	{
		aliases: []string{"postcode", "postal_code", "zip", "postalCode"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.PostalCode = v },
	},
	{
		aliases: []string{"postcode"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Postcode = v },
	},
	{
		aliases: []string{"amenity"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Amenity = v },
	},
	{
		aliases: []string{"building"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Building = v },
	},
	{
		aliases: []string{"shop"},
		set:     func(a *wherelib.GeocodedAddress, v string) { a.Shop = v },
	},
}

func firstNonEmpty(fields map[string]string, aliases []string) string {
	for _, v := range aliases {
		if value := cleanString(fields[v]); value != "" {
			return value
		}
	}

	return ""
}

func addressFromFields(fields map[string]string) wherelib.GeocodedAddress {
	rv := wherelib.GeocodedAddress{}

	for _, v := range addressAliases {
		if value := firstNonEmpty(fields, v.aliases); value != "" {
			v.set(&rv, value)
		}
	}

	return rv
}
