package ccu

import "errors"

// Domain errors for the ccu package.
var (
	// ErrHubError is returned when the hub answers with an error field.
	ErrHubError = errors.New("ccu: hub error")

	// ErrDecode is returned when a hub result has an unexpected shape.
	ErrDecode = errors.New("ccu: unexpected result")
)
