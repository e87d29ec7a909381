package cache

import (
	"context"
	"sync"
	"time"
)

// fakeCentral is a minimal Central for cache tests.
type fakeCentral struct {
	primary  Client
	clients  []Client
	entities map[string][]Entity
}

func (f *fakeCentral) Name() string          { return "test" }
func (f *fakeCentral) PrimaryClient() Client { return f.primary }
func (f *fakeCentral) Clients() []Client     { return f.clients }

func (f *fakeCentral) ReadableGenericEntities(paramsetKey string) []Entity {
	if paramsetKey != "" {
		return f.entities[paramsetKey]
	}
	var all []Entity
	for _, key := range []string{ParamsetValues, ParamsetMaster} {
		all = append(all, f.entities[key]...)
	}
	return all
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeDevice is a Device with fixed addresses.
type fakeDevice struct {
	address  string
	channels []string
}

func (d fakeDevice) DeviceAddress() string      { return d.address }
func (d fakeDevice) ChannelAddresses() []string { return d.channels }

var bg = context.Background()
