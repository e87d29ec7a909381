package cache

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DeviceDetails caches device and channel metadata: names, interfaces,
// channel ids, rooms and functions.
//
// Names and interfaces are first-write-wins. Channel ids are last-write-wins.
// Rooms and functions are replaced wholesale on every load.
//
// Thread Safety: all methods are safe for concurrent use. Concurrent Load
// calls share one in-flight load.
type DeviceDetails struct {
	central Central
	maxAge  time.Duration
	now     func() time.Time
	logger  Logger
	loads   singleflight.Group

	mu               sync.RWMutex
	names            map[string]string
	interfaces       map[string]string
	deviceChannelIDs map[string]string
	channelRooms     map[string][]string
	deviceRooms      map[string]string
	functions        map[string][]string
	lastUpdated      time.Time
}

// NewDeviceDetails creates an empty cache owned by central.
func NewDeviceDetails(central Central, opts Options) *DeviceDetails {
	opts = opts.withDefaults()
	return &DeviceDetails{
		central:          central,
		maxAge:           opts.MaxAge,
		now:              opts.Now,
		logger:           opts.Logger,
		names:            make(map[string]string),
		interfaces:       make(map[string]string),
		deviceChannelIDs: make(map[string]string),
		channelRooms:     make(map[string][]string),
		deviceRooms:      make(map[string]string),
		functions:        make(map[string][]string),
	}
}

// Load refreshes the cache from the central's primary client.
//
// It is a no-op while the cache is younger than half the staleness window.
// Otherwise the cache is cleared first, so a failed load leaves it empty
// and unstamped.
func (d *DeviceDetails) Load(ctx context.Context) error {
	_, err, _ := d.loads.Do("load", func() (any, error) {
		return nil, d.load(ctx)
	})
	return err
}

func (d *DeviceDetails) load(ctx context.Context) error {
	if d.updatedWithin(d.maxAge / 2) {
		return nil
	}
	d.Clear()

	client := d.central.PrimaryClient()
	if client == nil {
		return ErrNoPrimaryClient
	}

	d.logger.Debug("loading names", "central", d.central.Name())
	if err := client.FetchDeviceDetails(ctx); err != nil {
		return fmt.Errorf("%w: device details: %w", ErrLoad, err)
	}

	d.logger.Debug("loading rooms", "central", d.central.Name())
	rooms, err := client.GetAllRooms(ctx)
	if err != nil {
		return fmt.Errorf("%w: rooms: %w", ErrLoad, err)
	}

	d.logger.Debug("loading functions", "central", d.central.Name())
	functions, err := client.GetAllFunctions(ctx)
	if err != nil {
		return fmt.Errorf("%w: functions: %w", ErrLoad, err)
	}

	d.mu.Lock()
	d.channelRooms = dedupe(rooms)
	d.deviceRooms = identifyDeviceRooms(d.channelRooms)
	d.functions = dedupe(functions)
	d.lastUpdated = d.now()
	d.mu.Unlock()

	return nil
}

// LastUpdated returns the time of the last successful load (zero if none).
func (d *DeviceDetails) LastUpdated() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastUpdated
}

func (d *DeviceDetails) updatedWithin(window time.Duration) bool {
	return UpdatedWithin(d.LastUpdated(), window, d.now())
}

// AddName stores a display name unless address already has one.
func (d *DeviceDetails) AddName(address, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.names[address]; !ok {
		d.names[address] = name
	}
}

// GetName returns the display name of address.
func (d *DeviceDetails) GetName(address string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[address]
	return name, ok
}

// AddInterface stores the owning interface unless address already has one.
func (d *DeviceDetails) AddInterface(address, iface string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.interfaces[address]; !ok {
		d.interfaces[address] = iface
	}
}

// GetInterface returns the owning interface of address, or DefaultInterface.
func (d *DeviceDetails) GetInterface(address string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if iface := d.interfaces[address]; iface != "" {
		return iface
	}
	return DefaultInterface
}

// AddDeviceChannelID stores the hub's channel id for address.
func (d *DeviceDetails) AddDeviceChannelID(address, channelID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deviceChannelIDs[address] = channelID
}

// DeviceChannelIDs returns a copy of the address -> channel id table.
func (d *DeviceDetails) DeviceChannelIDs() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.deviceChannelIDs)
}

// GetRoom returns the single room of a device, if its channels agree on one.
func (d *DeviceDetails) GetRoom(deviceAddress string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	room, ok := d.deviceRooms[deviceAddress]
	return room, ok
}

// GetFunctionText returns the functions of address joined by ",".
func (d *DeviceDetails) GetFunctionText(address string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	functions := d.functions[address]
	if len(functions) == 0 {
		return "", false
	}
	return strings.Join(functions, ","), true
}

// RemoveDevice drops the names of a device and its channels.
func (d *DeviceDetails) RemoveDevice(device Device) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.names, device.DeviceAddress())
	for _, address := range device.ChannelAddresses() {
		delete(d.names, address)
	}
}

// Clear drops names, rooms and functions and marks the cache as never updated.
// Interfaces and channel ids survive.
func (d *DeviceDetails) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.names)
	d.channelRooms = make(map[string][]string)
	d.deviceRooms = make(map[string]string)
	d.functions = make(map[string][]string)
	d.lastUpdated = time.Time{}
}

// Len returns the number of cached names.
func (d *DeviceDetails) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.names)
}

// identifyDeviceRooms folds channel rooms into their devices and keeps
// only devices whose channels name exactly one distinct room.
func identifyDeviceRooms(channelRooms map[string][]string) map[string]string {
	perDevice := make(map[string]map[string]struct{})
	for address, rooms := range channelRooms {
		if len(rooms) == 0 {
			continue
		}
		device := DeviceAddress(address)
		set, ok := perDevice[device]
		if !ok {
			set = make(map[string]struct{})
			perDevice[device] = set
		}
		for _, room := range rooms {
			set[room] = struct{}{}
		}
	}

	out := make(map[string]string)
	for device, set := range perDevice {
		if len(set) != 1 {
			continue
		}
		for room := range set {
			out[device] = room
		}
	}
	return out
}

// dedupe copies labels per address as sorted, distinct slices.
func dedupe(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for address, labels := range in {
		if len(labels) == 0 {
			continue
		}
		sorted := slices.Clone(labels)
		slices.Sort(sorted)
		out[address] = slices.Compact(sorted)
	}
	return out
}
