package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Catalog errors. The IGDB client distinguishes these so callers can
	// pick a retry policy with errors.Is.
	ErrAuthFailed        = fmt.Errorf("authentication failed")
	ErrRemoteUnavailable = fmt.Errorf("remote catalog unavailable")
	ErrRateLimited       = fmt.Errorf("rate limited")
	ErrMalformedQuery    = fmt.Errorf("malformed query")

	// Resolution outcomes. ErrNoMatch is a normal negative result, not a
	// failure; ErrPartialData means the platform row was written but one
	// or more dependent rows could not be fetched.
	ErrNoMatch     = fmt.Errorf("no matching platform")
	ErrPartialData = fmt.Errorf("partial platform data")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
