// Whereabouts is a service which tells where your users are and what
// they use.
//
// A client sends a request, optionally with GPS coordinates from a
// browser. Whereabouts takes an IP address, a user agent and
// Accept-Language of this request and returns an enriched record:
// location, ISP and device information.
//
// Tool itself is organized into 3 logical parts:
//
// # Wherelib
//
// wherelib is a main package of the application which contains
// Enricher and logic related to fallback chains of vendors, merging of
// their responses and user agent classification. NewHTTPHandler wraps
// Enricher into http.Handler.
//
// # Providers
//
// This package has implementations of IP providers (ipwhois.app,
// ip-api.com, MaxMind databases) and reverse geocoders (Nominatim,
// BigDataCloud). It also has an offline timezone finder which detects
// a timezone by GPS coordinates.
//
// # Whereabouts
//
// A main package itself is an example of how to wire both wherelib
// and providers. Resulting binary reads hjson config, starts http
// server and you can use it in your infrastructure as is.
package main
