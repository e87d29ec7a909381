package central

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Cache names used in telemetry and status documents.
const (
	cacheDeviceDetails = "device_details"
	cacheCentralData   = "central_data"
)

// loadResult is the outcome of the last LoadCaches run.
type loadResult struct {
	runID string
	at    time.Time
	err   error
}

// LoadCaches refreshes the device details and then the central data.
// Both loads are debounced by the caches themselves, so calling this in
// bursts is cheap. Failures are logged, recorded and returned joined.
func (c *Central) LoadCaches(ctx context.Context) error {
	runID := uuid.NewString()
	c.logger.Debug("loading caches", "central", c.name, "run_id", runID)

	detailsErr := c.timedLoad(ctx, runID, cacheDeviceDetails, c.details.Load, c.details.Len)
	if detailsErr == nil {
		c.syncDeviceInterfaces()
	}
	dataErr := c.timedLoad(ctx, runID, cacheCentralData, c.data.Load, c.data.Len)
	err := errors.Join(detailsErr, dataErr)

	c.lastLoadMu.Lock()
	c.lastLoad = loadResult{runID: runID, at: c.now(), err: err}
	c.lastLoadMu.Unlock()

	c.publishStatus(StateRunning)
	return err
}

// timedLoad runs one cache load, then logs and records its outcome.
func (c *Central) timedLoad(ctx context.Context, runID, cacheName string, load func(context.Context) error, entries func() int) error {
	start := time.Now()
	err := load(ctx)
	elapsed := time.Since(start)
	count := entries()

	if err != nil {
		c.logger.Warn("cache load failed",
			"central", c.name,
			"cache", cacheName,
			"run_id", runID,
			"error", err,
		)
	} else {
		c.logger.Debug("cache loaded",
			"central", c.name,
			"cache", cacheName,
			"run_id", runID,
			"entries", count,
			"duration", elapsed,
		)
	}

	if c.metrics != nil {
		c.metrics.WriteCacheLoad(c.name, cacheName, elapsed, count, err == nil)
	}
	return err
}

// Start loads the caches once and then reloads them every refresh
// interval until ctx is cancelled or Stop is called. A failed initial
// load is logged, not returned: the loop retries on the next tick.
func (c *Central) Start(ctx context.Context) error {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	c.logger.Info("central starting", "central", c.name, "refresh_interval", c.refreshInterval)
	if err := c.LoadCaches(ctx); err != nil {
		c.logger.Warn("initial cache load failed", "central", c.name, "error", err)
	}

	c.wg.Add(1)
	go c.refreshLoop(ctx)
	return nil
}

// refreshLoop reloads the caches on every tick.
func (c *Central) refreshLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-ticker.C:
			//nolint:errcheck // failures are logged and recorded by LoadCaches
			c.LoadCaches(ctx)
		}
	}
}

// Refresh reloads the central data and then the live value of every
// readable entity of paramsetKey (all entities when empty).
func (c *Central) Refresh(ctx context.Context, paramsetKey string) {
	if err := c.timedLoad(ctx, uuid.NewString(), cacheCentralData, c.data.Load, c.data.Len); err != nil {
		c.logger.Warn("refresh: central data load failed", "central", c.name, "error", err)
	}
	c.data.RefreshEntityData(ctx, paramsetKey)
	c.publishStatus(StateRunning)
}

// Stop ends the refresh loop, logs the hub session out and clears both
// caches. Safe to call multiple times.
func (c *Central) Stop(ctx context.Context) {
	c.stopOnce.Do(func() {
		c.startMu.Lock()
		c.stopped = true
		c.startMu.Unlock()

		close(c.done)
		c.wg.Wait()

		if c.rpc.IsActivated() {
			c.rpc.Logout(ctx)
		}
		c.details.Clear()
		c.data.Clear()

		c.publishStatus(StateStopped)
		c.logger.Info("central stopped", "central", c.name)
	})
}
