package central

import "errors"

// Domain errors for the central.
var (
	// ErrInvalidOptions indicates New was given unusable options.
	ErrInvalidOptions = errors.New("central: invalid options")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("central: already started")

	// ErrNotRegistered indicates an entity was used before AddEntity.
	ErrNotRegistered = errors.New("central: entity not registered")

	// ErrInvalidEntity indicates an entity without channel address or parameter.
	ErrInvalidEntity = errors.New("central: invalid entity")

	// ErrNoClient indicates a read for an interface without a client.
	ErrNoClient = errors.New("central: no client for interface")

	// ErrInvalidCommand indicates a malformed refresh command payload.
	ErrInvalidCommand = errors.New("central: invalid refresh command")
)
