package jsonrpc

import "errors"

// Errors returned by Response helpers.
// Hub interaction failures are never returned as errors; they arrive as
// Response values with a non-nil Error field.
var (
	// ErrInvalidResponse is returned when a result cannot be decoded.
	ErrInvalidResponse = errors.New("jsonrpc: invalid response")
)
