package providers_test

import (
	"net/http"
	"time"

	"github.com/9seconds/whereabouts/wherelib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite

	http wherelib.HTTPClient
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.http = wherelib.NewHTTPClient(&http.Client{},
		"test",
		"whereabouts-test/1.0 (test@example.com)",
		time.Millisecond,
		100,
		1000,
		time.Second,
		time.Second)
}

type MockedProviderTestSuite struct {
	ProviderTestSuite
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
}
