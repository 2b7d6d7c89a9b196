package wherelib_test

import (
	"testing"

	"github.com/9seconds/whereabouts/wherelib"
	"github.com/stretchr/testify/suite"
)

type ClassifyUserAgentTestSuite struct {
	suite.Suite
}

func (suite *ClassifyUserAgentTestSuite) TestFirefoxWindows() {
	info := wherelib.ClassifyUserAgent(
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:110.0) Gecko/20100101 Firefox/110.0")

	suite.Equal(wherelib.DeviceInfo{
		Browser:        "Firefox",
		BrowserVersion: "110.0",
		OS:             "Windows",
		OSVersion:      "10",
		DeviceType:     "Desktop",
		Device:         "Desktop",
	}, info)
}

func (suite *ClassifyUserAgentTestSuite) TestChromeMacOS() {
	info := wherelib.ClassifyUserAgent(
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.71 Safari/537.36")

	suite.Equal("Chrome", info.Browser)
	suite.Equal("120.0.6099.71", info.BrowserVersion)
	suite.Equal("macOS", info.OS)
	suite.Equal("10.15.7", info.OSVersion)
	suite.Equal("Desktop", info.DeviceType)
}

func (suite *ClassifyUserAgentTestSuite) TestSafariIPhone() {
	info := wherelib.ClassifyUserAgent(
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1.2 Mobile/15E148 Safari/604.1")

	suite.Equal("Safari", info.Browser)
	suite.Equal("17.1.2", info.BrowserVersion)
	// iPhones mention Mac OS X so they are detected as macOS
	suite.Equal("macOS", info.OS)
	suite.Equal("Unknown", info.OSVersion)
	suite.Equal("Mobile", info.DeviceType)
	suite.Equal("Mobile", info.Device)
}

func (suite *ClassifyUserAgentTestSuite) TestChromeAndroid() {
	info := wherelib.ClassifyUserAgent(
		"Mozilla/5.0 (Linux; Android 9; SM-G960F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Mobile Safari/537.36")

	suite.Equal("Chrome", info.Browser)
	suite.Equal("119.0.0.0", info.BrowserVersion)
	suite.Equal("Linux", info.OS)
	suite.Equal("Unknown", info.OSVersion)
	suite.Equal("Mobile", info.DeviceType)
}

func (suite *ClassifyUserAgentTestSuite) TestWindowsVersions() {
	testData := map[string]string{
		"Windows NT 10.0": "10",
		"Windows NT 6.3":  "8.1",
		"Windows NT 6.2":  "8",
		"Windows NT 6.1":  "7",
		"Windows NT 5.1":  "Unknown",
	}

	for k, v := range testData {
		info := wherelib.ClassifyUserAgent("Mozilla/5.0 (" + k + ") Firefox/100.0")

		suite.Equal("Windows", info.OS, k)
		suite.Equal(v, info.OSVersion, k)
	}
}

func (suite *ClassifyUserAgentTestSuite) TestOpera() {
	info := wherelib.ClassifyUserAgent("Opera/9.80 (X11; U; en) Presto/2.12.388 Version/12.16")

	suite.Equal("Opera", info.Browser)
	suite.Equal("12.16", info.BrowserVersion)
}

func (suite *ClassifyUserAgentTestSuite) TestTablet() {
	info := wherelib.ClassifyUserAgent("SomeBrowser (Tablet; rv:1.0)")

	suite.Equal("Tablet", info.DeviceType)
	suite.Equal("Unknown", info.Browser)
	suite.Equal("Unknown", info.OS)
}

func (suite *ClassifyUserAgentTestSuite) TestEmpty() {
	suite.Equal(wherelib.DeviceInfo{
		Browser:        "Unknown",
		BrowserVersion: "Unknown",
		OS:             "Unknown",
		OSVersion:      "Unknown",
		DeviceType:     "Desktop",
		Device:         "Desktop",
	}, wherelib.ClassifyUserAgent(""))
}

func (suite *ClassifyUserAgentTestSuite) TestCaseSensitive() {
	info := wherelib.ClassifyUserAgent("firefox/110.0 windows mobile")

	suite.Equal("Unknown", info.Browser)
	suite.Equal("Unknown", info.OS)
	suite.Equal("Desktop", info.DeviceType)
}

func TestClassifyUserAgent(t *testing.T) {
	suite.Run(t, &ClassifyUserAgentTestSuite{})
}
