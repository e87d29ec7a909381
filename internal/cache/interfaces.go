package cache

import "context"

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces_test.go -package=cache -exclude_interfaces=Device,Central,Logger

// Client is one hub interface client as seen by the caches.
// Fetch methods write their results back into the caches through the
// stores the client was built with.
type Client interface {
	// Interface returns the hub interface name (e.g., "HmIP-RF").
	Interface() string

	// FetchDeviceDetails populates names, interfaces and channel ids.
	FetchDeviceDetails(ctx context.Context) error

	// GetAllRooms returns address -> room labels.
	GetAllRooms(ctx context.Context) (map[string][]string, error)

	// GetAllFunctions returns address -> function labels.
	GetAllFunctions(ctx context.Context) (map[string][]string, error)

	// FetchAllDeviceData bulk-loads live values into the central data cache.
	FetchAllDeviceData(ctx context.Context) error
}

// ValueFetcher reads a single parameter value from the hub.
type ValueFetcher interface {
	GetValue(ctx context.Context, channelAddress, paramsetKey, parameter string) (any, error)
}

// Entity is a readable parameter that can reload its live value.
type Entity interface {
	LoadEntityValue(ctx context.Context, source CallSource) error
}

// Device identifies a device and its channels.
type Device interface {
	DeviceAddress() string
	ChannelAddresses() []string
}

// Central is the owner of the caches. The caches hold it as a
// non-owning back reference.
type Central interface {
	Name() string

	// PrimaryClient returns the client used for metadata, or nil.
	PrimaryClient() Client

	// Clients returns every configured client.
	Clients() []Client

	// ReadableGenericEntities returns readable entities, filtered by
	// paramset key unless it is empty.
	ReadableGenericEntities(paramsetKey string) []Entity
}

// Logger defines the logging interface used by the caches.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
