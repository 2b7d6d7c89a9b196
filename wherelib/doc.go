// This package provides a set of structs and functions which are used
// to enrich an incoming request with a location and device details.
//
// wherelib is core of the whereabouts project. The rest of the
// application is an _example_ on how to use this library: how to read
// a configuration, how to build providers and how to serve HTTP.
//
// Enricher is a main entity of the wherelib. It accepts EnrichmentInput
// (IP address, User-Agent, optional GPS coordinates) and returns
// UserInfo: a consolidated record built from several external sources.
//
// There are 2 chains of providers. IP providers are asked one by one
// until one of them returns a location for the IP address. Geo providers
// turn GPS coordinates into a postal address; a provider which supports
// zoom levels is asked for the finest one first and then for coarser
// ones. Results of both chains are merged with Reconcile: GPS
// coordinates always win, the rest of the fields only fill gaps.
//
// Enricher never fails. If every provider is down, you still get a
// result with IP, User-Agent, device details and timestamp.
package wherelib
