package providers

import (
	"fmt"

	"github.com/9seconds/whereabouts/wherelib"
	"github.com/ringsaturn/tzf"
)

type timezoneFinder struct {
	finder tzf.F
}

func (t timezoneFinder) TimezoneName(coords wherelib.Coordinates) string {
	return t.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
}

// NewTimezoneFinder returns an offline finder of timezones by
// coordinates. It keeps timezone polygons in memory so initialization
// takes a while.
func NewTimezoneFinder() (wherelib.TimezoneFinder, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("cannot initialize timezone finder: %w", err)
	}

	return timezoneFinder{
		finder: finder,
	}, nil
}
