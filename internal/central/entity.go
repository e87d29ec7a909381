package central

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-ccu/internal/cache"
)

// EntityDescription describes one hub parameter.
type EntityDescription struct {
	// Interface of the device. When empty the interface known to the
	// device details cache is used.
	Interface string

	ChannelAddress string
	ParamsetKey    string // default: VALUES
	Parameter      string
	Type           cache.ParameterType
	Operations     cache.Operations
	ValueList      []string
}

// GenericEntity is a readable hub parameter with its last converted value.
//
// The zero value of the value is nil; a value that could not be read after
// a previous successful read marks the entity as state uncertain instead of
// overwriting it.
type GenericEntity struct {
	desc EntityDescription

	mu             sync.RWMutex
	values         *cache.ValueCache
	maxAge         time.Duration
	now            func() time.Time
	value          any
	lastUpdated    time.Time
	stateUncertain bool
}

// NewGenericEntity creates an entity. It must be registered with
// Central.AddEntity before it can load values.
func NewGenericEntity(desc EntityDescription) *GenericEntity {
	if desc.ParamsetKey == "" {
		desc.ParamsetKey = cache.ParamsetValues
	}
	return &GenericEntity{desc: desc}
}

// Key uniquely identifies the entity within its device.
func (e *GenericEntity) Key() string {
	return e.desc.ChannelAddress + "." + e.desc.ParamsetKey + "." + e.desc.Parameter
}

// ChannelAddress returns the channel address.
func (e *GenericEntity) ChannelAddress() string { return e.desc.ChannelAddress }

// ParamsetKey returns the paramset key.
func (e *GenericEntity) ParamsetKey() string { return e.desc.ParamsetKey }

// Parameter returns the parameter name.
func (e *GenericEntity) Parameter() string { return e.desc.Parameter }

// IsReadable reports whether the parameter supports reads.
func (e *GenericEntity) IsReadable() bool {
	return e.desc.Operations&cache.OperationRead != 0
}

// Value returns the last converted value (nil until the first read).
func (e *GenericEntity) Value() any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value
}

// LastUpdated returns the time of the last successful update.
func (e *GenericEntity) LastUpdated() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastUpdated
}

// StateUncertain reports whether the last read found no value after an
// earlier one succeeded.
func (e *GenericEntity) StateUncertain() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateUncertain
}

// bind attaches the entity to its device value cache.
func (e *GenericEntity) bind(values *cache.ValueCache, maxAge time.Duration, now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values = values
	e.maxAge = maxAge
	e.now = now
}

// LoadEntityValue reads the value through the device value cache.
// It is a no-op for unreadable parameters and for entities updated within
// the staleness window.
func (e *GenericEntity) LoadEntityValue(ctx context.Context, source cache.CallSource) error {
	e.mu.RLock()
	values, maxAge, now, last := e.values, e.maxAge, e.now, e.lastUpdated
	e.mu.RUnlock()

	if values == nil {
		return fmt.Errorf("%w: %s", ErrNotRegistered, e.Key())
	}
	if !e.IsReadable() || cache.UpdatedWithin(last, maxAge, now()) {
		return nil
	}

	raw := values.GetValue(ctx, e.desc.ChannelAddress, e.desc.ParamsetKey, e.desc.Parameter, source)
	return e.UpdateValue(raw)
}

// UpdateValue applies a raw hub value. NoCacheEntry keeps the current
// value and, if there was one, marks the state uncertain.
func (e *GenericEntity) UpdateValue(raw any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if cache.IsNoCacheEntry(raw) {
		if !e.lastUpdated.IsZero() {
			e.stateUncertain = true
		}
		return nil
	}

	value, err := cache.ConvertValue(raw, e.desc.Type, e.desc.ValueList)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Key(), err)
	}

	now := e.now
	if now == nil {
		now = time.Now
	}
	e.value = value
	e.lastUpdated = now()
	e.stateUncertain = false
	return nil
}
