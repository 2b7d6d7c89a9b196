package wherelib

import (
	"regexp"
	"strings"
)

const (
	Unknown = "Unknown"

	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"

	OSWindows = "Windows"
	OSMacOS   = "macOS"
	OSLinux   = "Linux"
	OSAndroid = "Android"
	OSIOS     = "iOS"

	DeviceMobile  = "Mobile"
	DeviceTablet  = "Tablet"
	DeviceDesktop = "Desktop"
)

type uaRule struct {
	name     string
	token    string
	versions []*regexp.Regexp
	// some vendors use underscores as version separators
	underscores bool
}

// Order is important: Chrome-based browsers mention Safari, Android
// mentions Linux, iPhones mention Mac OS X. The first match wins.
var (
	uaBrowserRules = []uaRule{
		{
			name:     BrowserChrome,
			token:    "Chrome",
			versions: []*regexp.Regexp{regexp.MustCompile(`Chrome/([0-9.]+)`)},
		},
		{
			name:     BrowserFirefox,
			token:    "Firefox",
			versions: []*regexp.Regexp{regexp.MustCompile(`Firefox/([0-9.]+)`)},
		},
		{
			name:     BrowserSafari,
			token:    "Safari",
			versions: []*regexp.Regexp{regexp.MustCompile(`Version/([0-9.]+)`)},
		},
		{
			name:     BrowserEdge,
			token:    "Edge",
			versions: []*regexp.Regexp{regexp.MustCompile(`Edge/([0-9.]+)`)},
		},
		{
			name:  BrowserOpera,
			token: "Opera",
			versions: []*regexp.Regexp{
				regexp.MustCompile(`Version/([0-9.]+)`),
				regexp.MustCompile(`Opera[/ ]([0-9.]+)`),
			},
		},
	}

	uaOSRules = []uaRule{
		{
			name:  OSWindows,
			token: "Windows",
		},
		{
			name:        OSMacOS,
			token:       "Mac",
			versions:    []*regexp.Regexp{regexp.MustCompile(`Mac OS X ([0-9]+(?:[_.][0-9]+)*)`)},
			underscores: true,
		},
		{
			name:  OSLinux,
			token: "Linux",
		},
		{
			name:     OSAndroid,
			token:    "Android",
			versions: []*regexp.Regexp{regexp.MustCompile(`Android ([0-9]+(?:\.[0-9]+)*)`)},
		},
		{
			name:        OSIOS,
			token:       "iOS",
			versions:    []*regexp.Regexp{regexp.MustCompile(`OS ([0-9]+(?:_[0-9]+)*)`)},
			underscores: true,
		},
	}

	uaWindowsVersions = []struct {
		token   string
		version string
	}{
		{"Windows NT 10.0", "10"},
		{"Windows NT 6.3", "8.1"},
		{"Windows NT 6.2", "8"},
		{"Windows NT 6.1", "7"},
	}
)

// ClassifyUserAgent detects browser, OS and device type from User-Agent
// header. This is a simple substring matcher, not a complete parser:
// each field is one of the predefined constants or Unknown.
func ClassifyUserAgent(userAgent string) DeviceInfo {
	browser, browserVersion := uaMatch(userAgent, uaBrowserRules)
	os, osVersion := uaMatch(userAgent, uaOSRules)

	if os == OSWindows {
		osVersion = uaWindowsVersion(userAgent)
	}

	deviceType := DeviceDesktop

	switch {
	case strings.Contains(userAgent, "Mobile"):
		deviceType = DeviceMobile
	case strings.Contains(userAgent, "Tablet"):
		deviceType = DeviceTablet
	}

	return DeviceInfo{
		Browser:        browser,
		BrowserVersion: browserVersion,
		OS:             os,
		OSVersion:      osVersion,
		DeviceType:     deviceType,
		Device:         deviceType,
	}
}

func uaMatch(userAgent string, rules []uaRule) (string, string) {
	for _, rule := range rules {
		if !strings.Contains(userAgent, rule.token) {
			continue
		}

		for _, re := range rule.versions {
			if match := re.FindStringSubmatch(userAgent); match != nil {
				version := match[1]

				if rule.underscores {
					version = strings.ReplaceAll(version, "_", ".")
				}

				return rule.name, version
			}
		}

		return rule.name, Unknown
	}

	return Unknown, Unknown
}

func uaWindowsVersion(userAgent string) string {
	for _, v := range uaWindowsVersions {
		if strings.Contains(userAgent, v.token) {
			return v.version
		}
	}

	return Unknown
}
