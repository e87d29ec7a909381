package cache

import "time"

// DefaultMaxAge is the staleness window used when none is configured.
const DefaultMaxAge = 60 * time.Second

// UpdatedWithin reports whether last lies less than maxAge before now.
// The zero time means "never updated" and is never within any window.
func UpdatedWithin(last time.Time, maxAge time.Duration, now time.Time) bool {
	if last.IsZero() {
		return false
	}
	return now.Sub(last) < maxAge
}

// Options configure a cache.
type Options struct {
	// MaxAge is the staleness window. Default: DefaultMaxAge.
	MaxAge time.Duration

	// Logger receives load diagnostics. Default: no-op.
	Logger Logger

	// Now overrides the clock. Default: time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxAge <= 0 {
		o.MaxAge = DefaultMaxAge
	}
	if o.Logger == nil {
		o.Logger = noopLogger{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
