// Package cache holds the in-memory, staleness-bounded mirrors of hub state.
//
// DeviceDetails keeps metadata (names, interfaces, channel ids, rooms,
// functions). CentralData keeps the last raw value of every readable
// parameter. ValueCache serves single reads for one device, preferring the
// central data over a hub round-trip.
//
// Both bulk caches debounce Load to once per half staleness window and clear
// themselves before fetching. Value misses return the NoCacheEntry sentinel;
// metadata misses return (zero, false).
//
// The caches reach the hub only through the Client interface of their owning
// Central, so this package has no transport dependency.
package cache
