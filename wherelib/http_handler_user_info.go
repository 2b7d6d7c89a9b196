package wherelib

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/qri-io/jsonschema"
)

const maxUserInfoBodySize = 4096

var handleUserInfoRequestJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "properties": {
            "latitude": {
                "type": ["number", "null"]
            },
            "longitude": {
                "type": ["number", "null"]
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type handleUserInfoRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type handleUserInfoResponse struct {
	Success bool     `json:"success"`
	Data    UserInfo `json:"data"`
}

func (h httpHandler) handleUserInfo(w http.ResponseWriter, req *http.Request) {
	bodyBytes, err := io.ReadAll(io.LimitReader(req.Body, maxUserInfoBodySize))

	req.Body.Close()

	if err != nil {
		h.sendError(w, err, "Cannot read request body", http.StatusBadRequest)

		return
	}

	if len(bytes.TrimSpace(bodyBytes)) == 0 {
		bodyBytes = []byte("{}")
	}

	if !json.Valid(bodyBytes) {
		h.sendError(w, nil, "Request body is not a valid JSON", http.StatusBadRequest)

		return
	}

	errs, err := handleUserInfoRequestJSONSchema.ValidateBytes(req.Context(), bodyBytes)
	if err != nil {
		h.sendError(w, err, "Cannot validate body", http.StatusInternalServerError)

		return
	}

	if len(errs) > 0 {
		h.sendError(w, errs[0], "Invalid request body", http.StatusBadRequest)

		return
	}

	parsedRequest := handleUserInfoRequest{}
	if err := json.Unmarshal(bodyBytes, &parsedRequest); err != nil {
		h.sendError(w, err, "Cannot parse request JSON", http.StatusBadRequest)

		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), h.requestTimeout)
	defer cancel()

	userInfo := h.enricher.Enrich(ctx, EnrichmentInput{
		IP:             clientIP(req),
		UserAgent:      req.Header.Get("User-Agent"),
		Latitude:       parsedRequest.Latitude,
		Longitude:      parsedRequest.Longitude,
		AcceptLanguage: req.Header.Get("Accept-Language"),
		Timestamp:      time.Now().UTC().Format(timestampFormat),
	})

	h.encodeJSON(w, handleUserInfoResponse{
		Success: true,
		Data:    userInfo,
	})
}
