package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/9seconds/whereabouts/providers"
	"github.com/9seconds/whereabouts/wherelib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	version = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

var (
	app = kingpin.New("whereabouts",
		"Enrichment service which tells where your users are.")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("WHEREABOUTS_DEBUG").
		Bool()
	configPath = app.Arg("config-path", "Path to the config.").
			Envar("WHEREABOUTS_CONFIG").
			Required().
			String()
)

func main() {
	app.Version(version)

	// .env has to be loaded before flags are parsed so Envar bindings
	// can see its values.
	if path := os.Getenv("WHEREABOUTS_ENV_FILE"); path != "" {
		_ = godotenv.Load(path)
	} else {
		_ = godotenv.Load()
	}

	kingpin.MustParse(app.Parse(os.Args[1:]))

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("event_name", "main").Logger()

	fs := afero.NewOsFs()

	conf, err := parseConfig(fs, *configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot parse config")
	}

	appLogger := newLogger()

	ipProviders, toShutdown, err := makeIPProviders(fs, conf, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize ip providers")
	}

	defer func() {
		for _, v := range toShutdown {
			v.Shutdown()
		}
	}()

	geoProviders, err := makeGeoProviders(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize geo providers")
	}

	var timezoneFinder wherelib.TimezoneFinder

	if conf.GetTimezoneFromGPS() {
		timezoneFinder, err = providers.NewTimezoneFinder()
		if err != nil {
			log.Fatal().Err(err).Msg("Cannot initialize timezone finder")
		}
	}

	enricher, err := wherelib.NewEnricher(wherelib.EnricherOpts{
		IPProviders:     ipProviders,
		GeoProviders:    geoProviders,
		Logger:          appLogger,
		WorkerPoolSize:  conf.GetWorkerPoolSize(),
		Pacing:          conf.GetGeocodingPacing(),
		DefaultLanguage: conf.GetDefaultLanguage(),
		TimezoneFinder:  timezoneFinder,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot initialize enricher")
	}

	defer enricher.Shutdown()

	listener, err := net.Listen("tcp", conf.GetListen())
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot start listener")
	}

	ctx, cancel := makeRootContext()
	defer cancel()

	handler := wherelib.NewHTTPHandler(enricher, conf.GetRequestTimeout())
	srv := &http.Server{
		Handler: newAccessLogMiddleware(
			newBasicAuthMiddleware(handler, conf.GetBasicAuth()),
			newEventLogger("http")),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		srv.Shutdown(shutdownCtx) // nolint: errcheck
	}()

	log.Info().Str("listen", conf.GetListen()).Str("version", version).Msg("Server has started")

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server has been stopped")
	}
}
