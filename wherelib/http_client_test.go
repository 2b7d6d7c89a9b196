package wherelib_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/9seconds/whereabouts/wherelib"
	"github.com/mccutchen/go-httpbin/httpbin"
	"github.com/stretchr/testify/suite"
)

type HTTPClientTestSuite struct {
	suite.Suite

	httpbinEndpoint *httptest.Server
	c               wherelib.HTTPClient
}

func (suite *HTTPClientTestSuite) SetupSuite() {
	suite.httpbinEndpoint = httptest.NewServer(httpbin.NewHTTPBin().Handler())
}

func (suite *HTTPClientTestSuite) TearDownSuite() {
	suite.httpbinEndpoint.Close()
}

func (suite *HTTPClientTestSuite) SetupTest() {
	suite.c = wherelib.NewHTTPClient(suite.httpbinEndpoint.Client(),
		"test",
		"whereabouts-test/1.0",
		100*time.Millisecond,
		1,
		5,
		time.Minute,
		time.Minute)
}

func (suite *HTTPClientTestSuite) TestRateLimiter() {
	now := time.Now()
	wg := &sync.WaitGroup{}

	wg.Add(10)

	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()

			req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/get", nil)
			resp, err := suite.c.Do(req)

			suite.NoError(err)
			suite.Equal(http.StatusOK, resp.StatusCode)
			resp.Body.Close()
		}()
	}

	wg.Wait()

	suite.True(time.Since(now) > 700*time.Millisecond)
	suite.WithinDuration(now, time.Now(), 12*100*time.Millisecond)
}

func (suite *HTTPClientTestSuite) TestUserAgent() {
	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/user-agent", nil)
	resp, err := suite.c.Do(req)

	suite.NoError(err)

	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	data := struct {
		UserAgent string `json:"user-agent"`
	}{}

	suite.NoError(json.Unmarshal(body, &data))
	suite.Equal("whereabouts-test/1.0", data.UserAgent)
}

func (suite *HTTPClientTestSuite) TestCustomUserAgent() {
	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/user-agent", nil)

	req.Header.Set("User-Agent", "custom")

	resp, err := suite.c.Do(req)

	suite.NoError(err)

	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	suite.Contains(string(body), "custom")
}

func (suite *HTTPClientTestSuite) TestBadStatus() {
	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/status/500", nil)
	_, err := suite.c.Do(req)

	suite.Error(err)
}

func (suite *HTTPClientTestSuite) TestCannotDial() {
	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"1"+"/status/500", nil)
	_, err := suite.c.Do(req)

	suite.Error(err)
}

func (suite *HTTPClientTestSuite) TestCircuitBreakerOpens() {
	for i := 0; i < 5; i++ {
		req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/status/503", nil)
		_, err := suite.c.Do(req)

		suite.Error(err)
	}

	req, _ := http.NewRequest("GET", suite.httpbinEndpoint.URL+"/get", nil)
	_, err := suite.c.Do(req)

	suite.ErrorIs(err, wherelib.ErrCircuitBreakerOpened)
}

func TestHTTPClient(t *testing.T) {
	suite.Run(t, &HTTPClientTestSuite{})
}
