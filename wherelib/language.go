package wherelib

import (
	"strings"

	"golang.org/x/text/language"
)

const DefaultLanguage = "en"

// PreferredLanguage picks a base language of the most preferred tag of
// Accept-Language header. Vendors return names of places in this
// language. If header is empty or garbage, fallback is returned.
func PreferredLanguage(acceptLanguage, fallback string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	base, confidence := tags[0].Base()
	if confidence == language.No || base.String() == "und" {
		return fallback
	}

	return base.String()
}
