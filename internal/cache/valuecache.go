package cache

import (
	"context"
	"time"
)

// noValue marks a failed fetch in the per-device cache.
type noValue struct{}

type valueEntry struct {
	value   any
	updated time.Time
}

// ValueCache serves single parameter reads for one device. It consults the
// central data cache for VALUES, then its own short-lived entries, and only
// then asks the hub.
//
// Reads are serialised per device.
type ValueCache struct {
	iface   string
	data    *CentralData
	fetcher ValueFetcher
	maxAge  time.Duration
	now     func() time.Time
	logger  Logger

	sem     chan struct{}
	entries map[string]valueEntry
}

// NewValueCache creates the value cache of a device on interface iface.
func NewValueCache(iface string, data *CentralData, fetcher ValueFetcher, opts Options) *ValueCache {
	opts = opts.withDefaults()
	return &ValueCache{
		iface:   iface,
		data:    data,
		fetcher: fetcher,
		maxAge:  opts.MaxAge,
		now:     opts.Now,
		logger:  opts.Logger,
		sem:     make(chan struct{}, 1),
		entries: make(map[string]valueEntry),
	}
}

// GetValue returns the value of a parameter, or NoCacheEntry when it is
// unknown. A failed hub read is remembered for the staleness window so the
// hub is not asked again meanwhile.
func (v *ValueCache) GetValue(ctx context.Context, channelAddress, paramsetKey, parameter string, source CallSource) any {
	select {
	case v.sem <- struct{}{}:
	case <-ctx.Done():
		return NoCacheEntry
	}
	defer func() { <-v.sem }()

	if cached := v.cached(channelAddress, paramsetKey, parameter); !IsNoCacheEntry(cached) {
		return resolve(cached)
	}

	var value any = noValue{}
	fetched, err := v.fetcher.GetValue(ctx, channelAddress, paramsetKey, parameter)
	if err != nil {
		v.logger.Debug("value fetch failed",
			"channel", channelAddress,
			"paramset", paramsetKey,
			"parameter", parameter,
			"source", string(source),
			"error", err,
		)
	} else {
		value = fetched
	}

	v.entries[entryKey(channelAddress, paramsetKey, parameter)] = valueEntry{value: value, updated: v.now()}
	return resolve(value)
}

func (v *ValueCache) cached(channelAddress, paramsetKey, parameter string) any {
	if paramsetKey == ParamsetValues && v.data != nil {
		if global := v.data.GetData(v.iface, channelAddress, parameter); !IsNoCacheEntry(global) {
			return global
		}
	}

	entry, ok := v.entries[entryKey(channelAddress, paramsetKey, parameter)]
	if ok && UpdatedWithin(entry.updated, v.maxAge, v.now()) {
		return entry.value
	}
	return NoCacheEntry
}

func resolve(value any) any {
	if _, ok := value.(noValue); ok {
		return NoCacheEntry
	}
	return value
}

func entryKey(channelAddress, paramsetKey, parameter string) string {
	return channelAddress + "." + paramsetKey + "." + parameter
}
