package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// measurementCacheLoad is the measurement of cache refresh points.
const measurementCacheLoad = "cache_load"

// WriteCacheLoad records one cache refresh. The write is batched and
// never blocks; it is dropped while disconnected.
//
// Parameters:
//   - central: Central name, stored as a tag
//   - cacheName: device_details or central_data, stored as a tag
//   - duration: Time the load took
//   - entries: Cache size after the load
//   - success: Whether the load succeeded
//
// Example:
//
//	client.WriteCacheLoad("ccu", "central_data", 850*time.Millisecond, 412, true)
func (c *Client) WriteCacheLoad(central, cacheName string, duration time.Duration, entries int, success bool) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(cacheLoadPoint(central, cacheName, duration, entries, success, time.Now()))
}

func cacheLoadPoint(central, cacheName string, duration time.Duration, entries int, success bool, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementCacheLoad,
		map[string]string{
			"central": central,
			"cache":   cacheName,
		},
		map[string]any{
			"duration_ms": float64(duration) / float64(time.Millisecond),
			"entries":     entries,
			"success":     success,
		},
		ts,
	)
}
