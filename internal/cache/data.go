package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CentralData caches the last known raw value of every readable parameter,
// bounded by the staleness window.
//
// Values are opaque; resolve them with ConvertValue at the read boundary.
// Once older than the window the cache counts as empty, and the read that
// notices this clears it.
type CentralData struct {
	central Central
	maxAge  time.Duration
	now     func() time.Time
	logger  Logger
	loads   singleflight.Group

	mu          sync.RWMutex
	values      map[string]any
	lastUpdated time.Time
}

// NewCentralData creates an empty cache owned by central.
func NewCentralData(central Central, opts Options) *CentralData {
	opts = opts.withDefaults()
	return &CentralData{
		central: central,
		maxAge:  opts.MaxAge,
		now:     opts.Now,
		logger:  opts.Logger,
		values:  make(map[string]any),
	}
}

// IsEmpty reports whether the cache holds no usable values.
// A stale cache is cleared as part of the check.
func (c *CentralData) IsEmpty() bool {
	c.mu.RLock()
	n := len(c.values)
	fresh := UpdatedWithin(c.lastUpdated, c.maxAge, c.now())
	c.mu.RUnlock()

	if n == 0 {
		return true
	}
	if !fresh {
		c.clearIfStale()
		return true
	}
	return false
}

func (c *CentralData) clearIfStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !UpdatedWithin(c.lastUpdated, c.maxAge, c.now()) {
		c.logger.Debug("central data stale, clearing", "central", c.central.Name(), "entries", len(c.values))
		clear(c.values)
		c.lastUpdated = time.Time{}
	}
}

// Load clears the cache and asks every client to bulk-fetch device data.
// It is a no-op while the cache is younger than half the staleness window.
// Client failures are joined; the remaining clients still load.
func (c *CentralData) Load(ctx context.Context) error {
	_, err, _ := c.loads.Do("load", func() (any, error) {
		return nil, c.load(ctx)
	})
	return err
}

func (c *CentralData) load(ctx context.Context) error {
	if UpdatedWithin(c.LastUpdated(), c.maxAge/2, c.now()) {
		return nil
	}
	c.Clear()

	c.logger.Debug("loading device data", "central", c.central.Name())
	var errs []error
	for _, client := range c.central.Clients() {
		if err := client.FetchAllDeviceData(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%w: device data %s: %w", ErrLoad, client.Interface(), err))
		}
	}
	return errors.Join(errs...)
}

// RefreshEntityData reloads the live value of every readable entity,
// filtered by paramsetKey unless it is empty. Entity failures are logged.
func (c *CentralData) RefreshEntityData(ctx context.Context, paramsetKey string) {
	for _, entity := range c.central.ReadableGenericEntities(paramsetKey) {
		if err := ctx.Err(); err != nil {
			return
		}
		if err := entity.LoadEntityValue(ctx, CallSourceHMInit); err != nil {
			c.logger.Debug("entity refresh failed", "central", c.central.Name(), "error", err)
		}
	}
}

// AddData merges values into the cache (last write wins) and stamps it.
func (c *CentralData) AddData(values map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range values {
		c.values[k] = v
	}
	c.lastUpdated = c.now()
}

// GetData returns the cached raw value, or NoCacheEntry when the cache is
// empty or stale or the key is missing.
func (c *CentralData) GetData(iface, channelAddress, parameter string) any {
	if c.IsEmpty() {
		return NoCacheEntry
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[DataKey(iface, channelAddress, parameter)]; ok {
		return v
	}
	return NoCacheEntry
}

// Clear drops every value and marks the cache as never updated.
func (c *CentralData) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.values)
	c.lastUpdated = time.Time{}
}

// LastUpdated returns the time of the last AddData (zero if none).
func (c *CentralData) LastUpdated() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}

// Len returns the number of entries held in memory, stale or not.
func (c *CentralData) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}
