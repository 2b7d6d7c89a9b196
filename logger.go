package main

import (
	"net"
	"os"

	"github.com/9seconds/whereabouts/wherelib"
	"github.com/rs/zerolog"
)

type logger struct {
	lookupLog  zerolog.Logger
	geocodeLog zerolog.Logger
	mergeLog   zerolog.Logger
	updateLog  zerolog.Logger
}

func (l *logger) LookupError(ip net.IP, name string, err error) {
	l.lookupLog.Error().Str("provider", name).Stringer("ip", ip).Err(err).Msg("")
}

func (l *logger) GeocodeError(coords wherelib.Coordinates, name string, zoom int, err error) {
	l.geocodeLog.Error().
		Str("provider", name).
		Float64("latitude", coords.Latitude).
		Float64("longitude", coords.Longitude).
		Int("zoom", zoom).
		Err(err).
		Msg("")
}

func (l *logger) MergeConflict(field, kept, dropped string) {
	l.mergeLog.Debug().Str("field", field).Str("kept", kept).Str("dropped", dropped).Msg("Sources disagree")
}

func (l *logger) UpdateInfo(name, message string) {
	l.updateLog.Info().Str("provider", name).Msg(message)
}

func (l *logger) UpdateError(name string, err error) {
	l.updateLog.Warn().Str("provider", name).Err(err).Msg("Cannot update a database")
}

func newEventLogger(eventName string) zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Str("event_name", eventName).Logger()
}

func newLogger() *logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog:  newEventLogger("lookup"),
		geocodeLog: newEventLogger("geocode"),
		mergeLog:   newEventLogger("merge"),
		updateLog:  newEventLogger("update"),
	}
}
