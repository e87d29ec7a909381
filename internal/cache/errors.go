package cache

import "errors"

// Domain errors for the cache package.
var (
	// ErrNoPrimaryClient is returned by DeviceDetails.Load when the central has no primary client.
	ErrNoPrimaryClient = errors.New("cache: no primary client")

	// ErrLoad wraps a client failure during a cache load.
	ErrLoad = errors.New("cache: load failed")

	// ErrConvert is returned when a raw value does not fit its parameter type.
	ErrConvert = errors.New("cache: value conversion failed")
)
