package main

import (
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
)

var requestIDRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// accessLogMiddleware tags each request with X-Request-ID and writes
// an access log line after a response is sent.
type accessLogMiddleware struct {
	handler http.Handler
	log     zerolog.Logger
}

func (a *accessLogMiddleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	startedAt := time.Now()
	requestID := req.Header.Get(requestIDHeader)

	if len(requestID) > maxRequestIDLength || !requestIDRegexp.MatchString(requestID) {
		requestID = uuid.New().String()
	}

	w.Header().Set(requestIDHeader, requestID)

	wrapped := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

	a.handler.ServeHTTP(wrapped, req)

	status := wrapped.Status()
	if status == 0 {
		status = http.StatusOK
	}

	event := a.log.Info()
	if status >= http.StatusInternalServerError {
		event = a.log.Warn()
	}

	event.Str("request_id", requestID).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("remote_addr", req.RemoteAddr).
		Int("status", status).
		Int("bytes", wrapped.BytesWritten()).
		Dur("elapsed", time.Since(startedAt)).
		Msg("")
}

func newAccessLogMiddleware(handler http.Handler, log zerolog.Logger) http.Handler {
	return &accessLogMiddleware{
		handler: handler,
		log:     log,
	}
}
