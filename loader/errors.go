package loader

import "errors"

var (
	// ErrBundleNotFound indicates the bundle directory does not exist.
	ErrBundleNotFound = errors.New("loader: bundle directory not found")
	// ErrMissingBundleMember indicates one of the four required bundle files is absent.
	ErrMissingBundleMember = errors.New("loader: bundle is missing a required file")
	// ErrInvalidTimestamp indicates a last_updated value could not be parsed.
	ErrInvalidTimestamp = errors.New("loader: could not parse timestamp")
	// ErrMalformedBundle indicates a bundle file exists but its contents do not decode.
	ErrMalformedBundle = errors.New("loader: malformed bundle file")
)
