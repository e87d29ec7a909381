package central

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-ccu/internal/cache"
	"github.com/nerrad567/gray-logic-ccu/internal/ccu"
)

// DefaultRefreshInterval is how often the caches are reloaded when neither
// an interval nor a max age is configured.
const DefaultRefreshInterval = cache.DefaultMaxAge

// primaryPreference orders the interfaces that may serve metadata.
var primaryPreference = []string{cache.InterfaceHmIPRF, cache.InterfaceBidCosRF}

// SessionClient is the shared hub session. Satisfied by *jsonrpc.Client.
type SessionClient interface {
	ccu.Caller
	IsActivated() bool
	Logout(ctx context.Context)
}

// StatusPublisher publishes the central status document.
// Satisfied by *mqtt.Client.
type StatusPublisher interface {
	PublishCentralStatus(central string, payload []byte) error
}

// MetricsWriter records cache load telemetry. Satisfied by *influxdb.Client.
type MetricsWriter interface {
	WriteCacheLoad(central, cacheName string, duration time.Duration, entries int, success bool)
}

// Logger defines the logging interface used by the central.
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

// Options configure a Central.
type Options struct {
	// Name identifies the central in logs, status topics and metrics.
	Name string

	// Interfaces lists the hub interfaces to serve. One client is built
	// per interface.
	Interfaces []string

	// RPC is the shared hub session.
	RPC SessionClient

	// MaxAge is the cache staleness window. Default: cache.DefaultMaxAge.
	MaxAge time.Duration

	// RefreshInterval is the reload period of the background loop.
	// Default and upper bound: MaxAge.
	RefreshInterval time.Duration

	// Publisher receives status documents (optional).
	Publisher StatusPublisher

	// Metrics receives cache load telemetry (optional).
	Metrics MetricsWriter

	// Logger is optional; a no-op logger is used when nil.
	Logger Logger

	// Now overrides the clock. Default: time.Now.
	Now func() time.Time
}

// Central owns the caches of one hub and the clients that fill them.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
//   - The caches are owned here and cleared on Stop.
type Central struct {
	name            string
	rpc             SessionClient
	maxAge          time.Duration
	refreshInterval time.Duration
	publisher       StatusPublisher
	metrics         MetricsWriter
	logger          Logger
	now             func() time.Time

	clients map[string]*ccu.Client
	order   []string
	primary *ccu.Client

	details *cache.DeviceDetails
	data    *cache.CentralData

	devices   map[string]*device
	devicesMu sync.RWMutex

	lastLoad   loadResult
	lastLoadMu sync.RWMutex

	started  bool
	stopped  bool
	startMu  sync.Mutex
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New validates opts and builds the central with its caches and one hub
// client per interface. No hub traffic happens until LoadCaches or Start.
//
// Parameters:
//   - opts: Name, Interfaces and RPC are required; the rest default
//
// Returns:
//   - *Central: Central with empty caches
//   - error: ErrInvalidOptions describing the first invalid option
func New(opts Options) (*Central, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	c := &Central{
		name:            opts.Name,
		rpc:             opts.RPC,
		maxAge:          opts.MaxAge,
		refreshInterval: opts.RefreshInterval,
		publisher:       opts.Publisher,
		metrics:         opts.Metrics,
		logger:          opts.Logger,
		now:             opts.Now,
		clients:         make(map[string]*ccu.Client, len(opts.Interfaces)),
		devices:         make(map[string]*device),
		done:            make(chan struct{}),
	}
	if c.maxAge <= 0 {
		c.maxAge = cache.DefaultMaxAge
	}
	if c.refreshInterval <= 0 || c.refreshInterval > c.maxAge {
		c.refreshInterval = c.maxAge
	}
	if c.logger == nil {
		c.logger = noopLogger{}
	}
	if c.now == nil {
		c.now = time.Now
	}

	cacheOpts := cache.Options{MaxAge: c.maxAge, Logger: c.logger, Now: c.now}
	c.details = cache.NewDeviceDetails(c, cacheOpts)
	c.data = cache.NewCentralData(c, cacheOpts)

	for _, iface := range opts.Interfaces {
		client := ccu.New(iface, c.rpc, c.details, c.data)
		client.SetLogger(c.logger)
		c.clients[iface] = client
		c.order = append(c.order, iface)
	}
	c.primary = c.clients[selectPrimary(c.order)]

	c.logger.Info("central created",
		"central", c.name,
		"interfaces", c.order,
		"primary", c.primary.Interface(),
	)
	return c, nil
}

func validate(opts Options) error {
	if opts.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidOptions)
	}
	if opts.RPC == nil {
		return fmt.Errorf("%w: rpc client is required", ErrInvalidOptions)
	}
	if len(opts.Interfaces) == 0 {
		return fmt.Errorf("%w: at least one interface is required", ErrInvalidOptions)
	}
	seen := make(map[string]bool, len(opts.Interfaces))
	for _, iface := range opts.Interfaces {
		if iface == "" {
			return fmt.Errorf("%w: empty interface name", ErrInvalidOptions)
		}
		if seen[iface] {
			return fmt.Errorf("%w: duplicate interface %q", ErrInvalidOptions, iface)
		}
		seen[iface] = true
	}
	return nil
}

// selectPrimary picks HmIP-RF, else BidCos-RF, else the first interface.
func selectPrimary(interfaces []string) string {
	for _, preferred := range primaryPreference {
		if slices.Contains(interfaces, preferred) {
			return preferred
		}
	}
	return interfaces[0]
}

// Name returns the central name.
func (c *Central) Name() string {
	return c.name
}

// PrimaryClient returns the client used for metadata loads.
func (c *Central) PrimaryClient() cache.Client {
	if c.primary == nil {
		return nil
	}
	return c.primary
}

// Clients returns every hub client in configuration order.
func (c *Central) Clients() []cache.Client {
	out := make([]cache.Client, 0, len(c.order))
	for _, iface := range c.order {
		out = append(out, c.clients[iface])
	}
	return out
}

// DeviceDetails returns the metadata cache.
func (c *Central) DeviceDetails() *cache.DeviceDetails {
	return c.details
}

// CentralData returns the bulk value cache.
func (c *Central) CentralData() *cache.CentralData {
	return c.data
}

// clientFor returns the client of iface.
func (c *Central) clientFor(iface string) (*ccu.Client, bool) {
	client, ok := c.clients[iface]
	return client, ok
}
