package wherelib

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	DefaultRequestTimeout = 20 * time.Second

	timestampFormat = "2006-01-02T15:04:05.000Z07:00"
)

type httpHandler struct {
	enricher       *Enricher
	requestTimeout time.Duration
}

func (h httpHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.encodeJSON(w, struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}{
		Status: "ok",
		Time:   time.Now().UTC().Format(timestampFormat),
	})
}

func (h httpHandler) handleStats(w http.ResponseWriter, _ *http.Request) {
	h.encodeJSON(w, struct {
		Success bool          `json:"success"`
		Data    []*UsageStats `json:"data"`
	}{
		Success: true,
		Data:    h.enricher.UsageStats(),
	})
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Set("Content-Type", "application/json")
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode())
	h.encodeJSON(w, e)
}

// clientIP detects an address of the client. Proxy headers take
// precedence over the address of the connection.
func clientIP(req *http.Request) string {
	if value := strings.TrimSpace(req.Header.Get("X-Real-IP")); value != "" {
		return value
	}

	if value := req.Header.Get("X-Forwarded-For"); value != "" {
		if first := strings.TrimSpace(strings.Split(value, ",")[0]); first != "" {
			return first
		}
	}

	if value := strings.TrimSpace(req.Header.Get("CF-Connecting-IP")); value != "" {
		return value
	}

	if host, _, err := net.SplitHostPort(req.RemoteAddr); err == nil {
		return host
	}

	return req.RemoteAddr
}

// NewHTTPHandler returns a router with /user-info, /health, /stats and
// /metrics endpoints.
func NewHTTPHandler(enricher *Enricher, requestTimeout time.Duration) http.Handler {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	handler := httpHandler{
		enricher:       enricher,
		requestTimeout: requestTimeout,
	}
	router := chi.NewRouter()

	router.Post("/user-info", handler.handleUserInfo)
	router.Get("/health", handler.handleHealth)
	router.Get("/stats", handler.handleStats)
	router.Method(http.MethodGet, "/metrics", MetricsHandler())
	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handler.sendError(w, nil, "Unknown endpoint", http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handler.sendError(w, nil, "This HTTP method is not allowed", http.StatusMethodNotAllowed)
	})

	return router
}
