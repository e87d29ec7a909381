package cache

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Interface names known to the hub.
const (
	InterfaceBidCosRF       = "BidCos-RF"
	InterfaceBidCosWired    = "BidCos-Wired"
	InterfaceHmIPRF         = "HmIP-RF"
	InterfaceVirtualDevices = "VirtualDevices"

	// DefaultInterface is reported for addresses with no known interface.
	DefaultInterface = InterfaceBidCosRF
)

// Paramset keys.
const (
	ParamsetValues = "VALUES"
	ParamsetMaster = "MASTER"
)

// noCacheEntry is the type of the NoCacheEntry sentinel.
type noCacheEntry struct{}

func (noCacheEntry) String() string { return "NO_CACHE_ENTRY" }

// NoCacheEntry is returned by value lookups that found nothing.
// It compares unequal to every legitimate value, including nil, 0 and false.
var NoCacheEntry any = noCacheEntry{}

// IsNoCacheEntry reports whether v is the NoCacheEntry sentinel.
func IsNoCacheEntry(v any) bool {
	_, ok := v.(noCacheEntry)
	return ok
}

// CallSource tags why a value is being read.
type CallSource string

// Call sources.
const (
	CallSourceHMInit            CallSource = "hm_init"
	CallSourceManualOrScheduled CallSource = "manual_or_scheduled"
)

// ParameterType is the declared type of a hub parameter.
type ParameterType string

// Parameter types.
const (
	TypeAction  ParameterType = "ACTION"
	TypeBool    ParameterType = "BOOL"
	TypeEnum    ParameterType = "ENUM"
	TypeFloat   ParameterType = "FLOAT"
	TypeInteger ParameterType = "INTEGER"
	TypeString  ParameterType = "STRING"
)

// Operations is the bitmask of what a parameter supports.
type Operations int

// Operation flags.
const (
	OperationRead  Operations = 1
	OperationWrite Operations = 2
	OperationEvent Operations = 4
)

// DeviceAddress returns the device part of a channel address ("ABC:1" -> "ABC").
func DeviceAddress(address string) string {
	if i := strings.IndexByte(address, ':'); i >= 0 {
		return address[:i]
	}
	return address
}

// ChannelNo returns the channel number of a channel address.
// Device addresses (no ':') report false.
func ChannelNo(address string) (int, bool) {
	i := strings.IndexByte(address, ':')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(address[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DataKey builds the central data cache key for a channel parameter.
func DataKey(iface, channelAddress, parameter string) string {
	return iface + "." + strings.ReplaceAll(channelAddress, ":", "%3A") + "." + parameter
}

// ConvertValue resolves an opaque cached value into the Go type of t:
// bool for BOOL, float64 for FLOAT, int for INTEGER and ENUM, string for STRING.
// ACTION and unknown types pass through. A nil raw value stays nil.
//
// For BOOL parameters with a value list, a string raw value is first mapped
// to its index in the list.
func ConvertValue(raw any, t ParameterType, valueList []string) (any, error) {
	if raw == nil {
		return nil, nil
	}

	switch t {
	case TypeBool:
		if s, ok := raw.(string); ok && len(valueList) > 0 {
			idx := slices.Index(valueList, s)
			if idx < 0 {
				return nil, fmt.Errorf("%w: %q not in value list", ErrConvert, s)
			}
			return idx != 0, nil
		}
		return toBool(raw)
	case TypeFloat:
		return toFloat(raw)
	case TypeInteger:
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		return int(f), nil
	case TypeEnum:
		if s, ok := raw.(string); ok {
			if idx := slices.Index(valueList, s); idx >= 0 {
				return idx, nil
			}
		}
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		return int(f), nil
	case TypeString:
		switch v := raw.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		default:
			return fmt.Sprint(v), nil
		}
	default:
		return raw, nil
	}
}

func toBool(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "y", "yes", "t", "true", "on", "1":
			return true, nil
		case "n", "no", "f", "false", "off", "0", "":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not a boolean", ErrConvert, v)
	default:
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		return f != 0, nil
	}
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrConvert, err)
		}
		return f, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			return 0, fmt.Errorf("%w: %q is not a number", ErrConvert, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: unsupported type %T", ErrConvert, raw)
}
