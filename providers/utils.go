package providers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/9seconds/whereabouts/wherelib"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(io.Discard, resp) // nolint: errcheck
	resp.Close()
}

// fetchJSON sends GET request and decodes JSON response into target.
func fetchJSON(ctx context.Context, client wherelib.HTTPClient,
	url string, headers map[string]string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("cannot send a request: %w", err)
	}

	defer flushResponse(resp.Body)

	if err := json.NewDecoder(bufio.NewReader(resp.Body)).Decode(target); err != nil {
		return fmt.Errorf("cannot parse a response: %w", err)
	}

	return nil
}

// cleanString turns placeholders which vendors use for unknown values
// into an empty string.
func cleanString(value string) string {
	value = strings.TrimSpace(value)

	switch strings.ToLower(value) {
	case "undefined", "null", "none", "-":
		return ""
	}

	return value
}

func cleanFloat(value *float64) *float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return nil
	}

	rv := *value

	return &rv
}

func floatToInt(value *float64) *int {
	if value = cleanFloat(value); value == nil {
		return nil
	}

	rv := int(math.Round(*value))

	return &rv
}

// stringifyFields keeps only scalar values of a JSON object as strings.
// Vendors mix numbers and strings in address objects.
func stringifyFields(fields map[string]interface{}) map[string]string {
	rv := make(map[string]string, len(fields))

	for k, v := range fields {
		switch value := v.(type) {
		case string:
			rv[k] = cleanString(value)
		case float64:
			rv[k] = strconv.FormatFloat(value, 'f', -1, 64)
		}
	}

	return rv
}
