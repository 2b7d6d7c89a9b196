package wherelib

import (
	"fmt"
	"reflect"

	"dario.cat/mergo"
	"github.com/antzucaro/matchr"
)

// Reconcile builds a location from the results of IP and geo providers.
//
// Precedence is 'fill gaps only': IP location is a base, geocoded
// address can add fields which are absent in the base but never
// replaces present ones. GPS coordinates are an exception: if they are
// given, they always win.
//
// Any of arguments can be nil. Arguments are never modified.
func Reconcile(ipLocation *IPLocation, geocoded *GeocodedAddress, gps *Coordinates) LocationInfo {
	rv, _ := reconcile(ipLocation, geocoded, gps)

	return rv
}

type mergeConflict struct {
	field   string
	kept    string
	dropped string
}

func reconcile(ipLocation *IPLocation, geocoded *GeocodedAddress,
	gps *Coordinates) (LocationInfo, []mergeConflict) {
	rv := LocationInfo{}

	if ipLocation != nil {
		rv = locationFromIP(*ipLocation)
	}

	if gps != nil {
		lat := gps.Latitude
		lng := gps.Longitude
		rv.Latitude = &lat
		rv.Longitude = &lng
	}

	var conflicts []mergeConflict

	if geocoded != nil {
		overlay := locationFromAddress(*geocoded)
		conflicts = findConflicts(rv, overlay)

		mergeMissing(&rv, overlay)
	}

	if rv.Country == "" && rv.CountryCode != "" {
		rv.Country = CountryName(rv.CountryCode)
	}

	return rv, conflicts
}

var (
	typeFloatPtr = reflect.TypeOf((*float64)(nil))
	typeIntPtr   = reflect.TypeOf((*int)(nil))
	typeBoolPtr  = reflect.TypeOf((*bool)(nil))
)

// presentScalars stops mergo from looking through pointers to scalars.
// A non-nil pointer is a present value even if it points to zero.
type presentScalars struct{}

func (presentScalars) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	switch typ {
	case typeFloatPtr, typeIntPtr, typeBoolPtr:
		return func(dst, src reflect.Value) error {
			if dst.CanSet() && dst.IsNil() && !src.IsNil() {
				dst.Set(src)
			}

			return nil
		}
	}

	return nil
}

// mergeMissing copies fields of src into dst if they are absent in dst.
// Nested structs are merged field by field. Present values of dst are
// never touched, zero scalars behind pointers included. dst must not
// share pointers with caller's data.
func mergeMissing(dst *LocationInfo, src LocationInfo) {
	if err := mergo.Merge(dst, src, mergo.WithTransformers(presentScalars{})); err != nil {
		// both arguments have the same type so this is a programming error
		panic(fmt.Sprintf("cannot merge locations: %v", err))
	}
}

func findConflicts(base, overlay LocationInfo) []mergeConflict {
	fields := []struct {
		name    string
		kept    string
		dropped string
	}{
		{"country", base.Country, overlay.Country},
		{"state", base.State, overlay.State},
		{"region", base.Region, overlay.Region},
		{"city", base.City, overlay.City},
	}

	var rv []mergeConflict

	for _, v := range fields {
		if v.kept == "" || v.dropped == "" || v.kept == v.dropped {
			continue
		}

		keptPrimary, keptSecondary := matchr.DoubleMetaphone(v.kept)
		droppedPrimary, droppedSecondary := matchr.DoubleMetaphone(v.dropped)

		if keptPrimary == droppedPrimary || keptSecondary == droppedSecondary {
			continue
		}

		rv = append(rv, mergeConflict{
			field:   v.name,
			kept:    v.kept,
			dropped: v.dropped,
		})
	}

	return rv
}

func locationFromIP(loc IPLocation) LocationInfo {
	rv := LocationInfo{
		Latitude:          copyFloat(loc.Latitude),
		Longitude:         copyFloat(loc.Longitude),
		Country:           loc.Country,
		CountryCode:       loc.CountryCode,
		Continent:         loc.Continent,
		ContinentCode:     loc.ContinentCode,
		Region:            loc.Region,
		State:             loc.Region,
		City:              loc.City,
		PostalCode:        loc.PostalCode,
		CountryFlag:       loc.CountryFlag,
		CountryCapital:    loc.CountryCapital,
		CountryPhone:      loc.CountryPhone,
		CountryNeighbours: loc.CountryNeighbours,
	}

	if loc.Timezone != (Timezone{}) {
		rv.Timezone = &Timezone{
			ID:           loc.Timezone.ID,
			Name:         loc.Timezone.Name,
			Abbreviation: loc.Timezone.Abbreviation,
			GMT:          loc.Timezone.GMT,
			Offset:       copyInt(loc.Timezone.Offset),
			GMTOffset:    copyInt(loc.Timezone.GMTOffset),
			DSTOffset:    copyInt(loc.Timezone.DSTOffset),
			IsDST:        copyBool(loc.Timezone.IsDST),
		}
	}

	if loc.Currency != (Currency{}) {
		rv.Currency = &Currency{
			Code:   loc.Currency.Code,
			Name:   loc.Currency.Name,
			Symbol: loc.Currency.Symbol,
			Plural: loc.Currency.Plural,
			Rate:   copyFloat(loc.Currency.Rate),
		}
	}

	return rv
}

func locationFromAddress(addr GeocodedAddress) LocationInfo {
	return LocationInfo{
		Country:       addr.Country,
		CountryCode:   addr.CountryCode,
		State:         addr.State,
		Region:        addr.Region,
		Province:      addr.Province,
		District:      addr.District,
		County:        addr.County,
		City:          addr.City,
		Town:          addr.Town,
		Village:       addr.Village,
		Municipality:  addr.Municipality,
		Suburb:        addr.Suburb,
		Neighbourhood: addr.Neighbourhood,
		Quarter:       addr.Quarter,
		CityDistrict:  addr.CityDistrict,
		Road:          addr.Road,
		Street:        addr.Street,
		HouseNumber:   addr.HouseNumber,
		HouseName:     addr.HouseName,
		PostalCode:    addr.PostalCode,
		Postcode:      addr.Postcode,
		Amenity:       addr.Amenity,
		Building:      addr.Building,
		Shop:          addr.Shop,
		Address:       addr.DisplayName,
		DisplayName:   addr.DisplayName,
	}
}

// fillTimezone sets a timezone name if providers have not given any.
func fillTimezone(location *LocationInfo, name string) {
	if name == "" {
		return
	}

	if location.Timezone == nil {
		location.Timezone = &Timezone{}
	}

	if location.Timezone.ID == "" {
		location.Timezone.ID = name
	}
}

func copyFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}

	rv := *value

	return &rv
}

func copyInt(value *int) *int {
	if value == nil {
		return nil
	}

	rv := *value

	return &rv
}

func copyBool(value *bool) *bool {
	if value == nil {
		return nil
	}

	rv := *value

	return &rv
}
