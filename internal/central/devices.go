package central

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nerrad567/gray-logic-ccu/internal/cache"
)

// device groups the entities and value cache of one device.
type device struct {
	iface    string
	pinned   bool // iface came from an entity description
	values   *cache.ValueCache
	entities map[string]*GenericEntity
}

// deviceLocked returns the device entry, creating it when absent. Without
// an explicit iface the device details decide. Callers hold devicesMu.
func (c *Central) deviceLocked(deviceAddress, iface string) *device {
	if d, ok := c.devices[deviceAddress]; ok {
		return d
	}
	pinned := iface != ""
	if !pinned {
		iface = c.details.GetInterface(deviceAddress)
	}
	d := &device{
		iface:    iface,
		pinned:   pinned,
		values:   c.newValueCache(deviceAddress, iface),
		entities: make(map[string]*GenericEntity),
	}
	c.devices[deviceAddress] = d
	return d
}

// valuesFor returns the value cache of a device, creating the device when
// absent.
func (c *Central) valuesFor(deviceAddress string) *cache.ValueCache {
	c.devicesMu.Lock()
	defer c.devicesMu.Unlock()
	return c.deviceLocked(deviceAddress, "").values
}

// newValueCache builds the value cache of a device on iface. A device on
// an interface without a client never reaches the hub.
func (c *Central) newValueCache(deviceAddress, iface string) *cache.ValueCache {
	var fetcher cache.ValueFetcher
	if client, ok := c.clientFor(iface); ok {
		fetcher = client
	} else {
		c.logger.Warn("no client for device interface",
			"central", c.name,
			"device", deviceAddress,
			"interface", iface,
		)
		fetcher = missingClient{iface: iface}
	}
	return cache.NewValueCache(iface, c.data, fetcher, cache.Options{
		MaxAge: c.maxAge,
		Logger: c.logger,
		Now:    c.now,
	})
}

// missingClient fails every read of an interface that has no client.
type missingClient struct {
	iface string
}

func (m missingClient) GetValue(context.Context, string, string, string) (any, error) {
	return nil, fmt.Errorf("%w: %s", ErrNoClient, m.iface)
}

// syncDeviceInterfaces moves every device whose interface changed in the
// device details onto a value cache for the new interface.
func (c *Central) syncDeviceInterfaces() {
	c.devicesMu.Lock()
	defer c.devicesMu.Unlock()

	for address, d := range c.devices {
		if d.pinned {
			continue
		}
		iface := c.details.GetInterface(address)
		if iface == d.iface {
			continue
		}
		c.logger.Info("device interface changed",
			"central", c.name,
			"device", address,
			"from", d.iface,
			"to", iface,
		)
		d.iface = iface
		d.values = c.newValueCache(address, iface)
		for _, e := range d.entities {
			e.bind(d.values, c.maxAge, c.now)
		}
	}
}

// AddEntity registers an entity with its device. The channel address must
// carry a channel number. A second entity with the same key replaces the
// first.
func (c *Central) AddEntity(entity *GenericEntity) error {
	if entity.ChannelAddress() == "" || entity.Parameter() == "" {
		return fmt.Errorf("%w: channel address and parameter are required", ErrInvalidEntity)
	}
	if _, ok := cache.ChannelNo(entity.ChannelAddress()); !ok {
		return fmt.Errorf("%w: %q is not a channel address", ErrInvalidEntity, entity.ChannelAddress())
	}

	c.devicesMu.Lock()
	defer c.devicesMu.Unlock()

	d := c.deviceLocked(cache.DeviceAddress(entity.ChannelAddress()), entity.desc.Interface)
	entity.bind(d.values, c.maxAge, c.now)
	d.entities[entity.Key()] = entity
	return nil
}

// Entity returns a registered entity.
func (c *Central) Entity(channelAddress, paramsetKey, parameter string) (*GenericEntity, bool) {
	c.devicesMu.RLock()
	defer c.devicesMu.RUnlock()

	d, ok := c.devices[cache.DeviceAddress(channelAddress)]
	if !ok {
		return nil, false
	}
	e, ok := d.entities[channelAddress+"."+paramsetKey+"."+parameter]
	return e, ok
}

// RemoveDevice drops the entities and value cache of a device and its
// cached names and channel ids.
func (c *Central) RemoveDevice(d cache.Device) {
	c.devicesMu.Lock()
	delete(c.devices, d.DeviceAddress())
	c.devicesMu.Unlock()

	c.details.RemoveDevice(d)
	c.logger.Debug("device removed", "central", c.name, "device", d.DeviceAddress())
}

// ReadableGenericEntities returns the readable entities ordered by key,
// filtered by paramsetKey unless it is empty.
func (c *Central) ReadableGenericEntities(paramsetKey string) []cache.Entity {
	c.devicesMu.RLock()
	var found []*GenericEntity
	for _, d := range c.devices {
		for _, e := range d.entities {
			if !e.IsReadable() {
				continue
			}
			if paramsetKey != "" && e.ParamsetKey() != paramsetKey {
				continue
			}
			found = append(found, e)
		}
	}
	c.devicesMu.RUnlock()

	slices.SortFunc(found, func(a, b *GenericEntity) int {
		return strings.Compare(a.Key(), b.Key())
	})

	out := make([]cache.Entity, len(found))
	for i, e := range found {
		out[i] = e
	}
	return out
}

// DeviceAddresses returns the sorted addresses of the devices that have
// entities or a value cache.
func (c *Central) DeviceAddresses() []string {
	c.devicesMu.RLock()
	defer c.devicesMu.RUnlock()
	return slices.Sorted(maps.Keys(c.devices))
}

// GetName returns the cached name of a device or channel.
func (c *Central) GetName(address string) (string, bool) {
	return c.details.GetName(address)
}

// GetInterface returns the interface of a device, or the default interface.
func (c *Central) GetInterface(deviceAddress string) string {
	return c.details.GetInterface(deviceAddress)
}

// GetRoom returns the single room of a device, if it has one.
func (c *Central) GetRoom(deviceAddress string) (string, bool) {
	return c.details.GetRoom(deviceAddress)
}

// GetFunctionText returns the comma-joined functions of an address.
func (c *Central) GetFunctionText(address string) (string, bool) {
	return c.details.GetFunctionText(address)
}

// DeviceChannelIDs returns a copy of the address to channel id table.
func (c *Central) DeviceChannelIDs() map[string]string {
	return c.details.DeviceChannelIDs()
}

// GetData returns the bulk-loaded raw value or cache.NoCacheEntry.
func (c *Central) GetData(iface, channelAddress, parameter string) any {
	return c.data.GetData(iface, channelAddress, parameter)
}

// GetValue reads a parameter through the device value cache, asking the
// hub only when no fresh cached value exists. It returns cache.NoCacheEntry
// when the value is unknown.
func (c *Central) GetValue(ctx context.Context, channelAddress, paramsetKey, parameter string) any {
	values := c.valuesFor(cache.DeviceAddress(channelAddress))
	return values.GetValue(ctx, channelAddress, paramsetKey, parameter, cache.CallSourceManualOrScheduled)
}
