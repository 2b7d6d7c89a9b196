package providers

import "errors"

var (
	// ErrProviderFailed is returned if vendor has responded with 2xx
	// but its payload says that request has failed.
	ErrProviderFailed = errors.New("provider has reported a failure")

	// ErrNoAddress is returned if geocoder has responded without
	// address details.
	ErrNoAddress = errors.New("response has no address details")

	// ErrDatabasePathIsRequired is returned if you are trying to
	// initialize an offline provider without a path to its database.
	ErrDatabasePathIsRequired = errors.New("path to the database is required")
)
