// Package influxdb records cache refresh telemetry in InfluxDB.
//
// Every cache load writes one "cache_load" point tagged with the central
// and cache name, carrying the load duration, the resulting entry count
// and a success flag.
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // telemetry off
//	}
//	defer client.Close()
//
//	client.WriteCacheLoad("ccu", "device_details", time.Second, 120, true)
//
// Writes are non-blocking and batched; errors arrive through SetOnError.
package influxdb
