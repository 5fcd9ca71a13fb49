package metadata

import "errors"

var (
	// ErrKeyNotConfigured means the provider's API key is missing from the
	// environment; the proxy endpoints cannot work without it.
	ErrKeyNotConfigured = errors.New("metadata provider API key not configured")

	// ErrNoResults is the provider's own "nothing found" answer.
	ErrNoResults = errors.New("no results found")
)
