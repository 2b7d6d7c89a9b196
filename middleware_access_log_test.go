package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type AccessLogMiddlewareTestSuite struct {
	suite.Suite

	buf     *bytes.Buffer
	handler http.Handler
}

func (suite *AccessLogMiddlewareTestSuite) SetupTest() {
	suite.buf = &bytes.Buffer{}
	suite.handler = newAccessLogMiddleware(
		http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.URL.Path == "/fail" {
				w.WriteHeader(http.StatusBadGateway)
			}

			w.Write([]byte("hello")) // nolint: errcheck
		}),
		zerolog.New(suite.buf))
}

func (suite *AccessLogMiddlewareTestSuite) logLine() map[string]interface{} {
	rv := map[string]interface{}{}

	suite.NoError(json.Unmarshal(suite.buf.Bytes(), &rv))

	return rv
}

func (suite *AccessLogMiddlewareTestSuite) TestGeneratedRequestID() {
	recorder := httptest.NewRecorder()

	suite.handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	requestID := recorder.Header().Get(requestIDHeader)
	_, err := uuid.Parse(requestID)

	suite.NoError(err)

	line := suite.logLine()

	suite.Equal(requestID, line["request_id"])
	suite.Equal("info", line["level"])
	suite.Equal("/health", line["path"])
	suite.EqualValues(http.StatusOK, line["status"])
	suite.EqualValues(5, line["bytes"])
}

func (suite *AccessLogMiddlewareTestSuite) TestIncomingRequestID() {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	req.Header.Set(requestIDHeader, "abc-123")
	suite.handler.ServeHTTP(recorder, req)

	suite.Equal("abc-123", recorder.Header().Get(requestIDHeader))
}

func (suite *AccessLogMiddlewareTestSuite) TestIncorrectRequestID() {
	for _, v := range []string{"<script>", strings.Repeat("a", 200)} {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)

		req.Header.Set(requestIDHeader, v)
		suite.handler.ServeHTTP(recorder, req)

		suite.NotEqual(v, recorder.Header().Get(requestIDHeader))
	}
}

func (suite *AccessLogMiddlewareTestSuite) TestServerError() {
	recorder := httptest.NewRecorder()

	suite.handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/fail", nil))

	line := suite.logLine()

	suite.Equal("warn", line["level"])
	suite.Equal(http.MethodPost, line["method"])
	suite.EqualValues(http.StatusBadGateway, line["status"])
}

func TestAccessLogMiddleware(t *testing.T) {
	suite.Run(t, &AccessLogMiddlewareTestSuite{})
}
