package ccu

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/nerrad567/gray-logic-ccu/internal/cache"
	"github.com/nerrad567/gray-logic-ccu/internal/jsonrpc"
)

//go:embed scripts/fetch_all_device_data.fn
var fetchAllDeviceDataScript string

const scriptInterfacePlaceholder = "##interface##"

// FetchAllDeviceData runs the bulk value script for this interface and
// writes the values into the data store.
func (c *Client) FetchAllDeviceData(ctx context.Context) error {
	script := strings.ReplaceAll(fetchAllDeviceDataScript, scriptInterfacePlaceholder, c.iface)

	var raw json.RawMessage
	if err := c.call(ctx, methodReGaRunScript, jsonrpc.Params{"script": script}, &raw); err != nil {
		return err
	}

	values, err := parseDeviceData(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, methodReGaRunScript, err)
	}
	if len(values) == 0 {
		c.logger.Debug("no device data", "interface", c.iface)
		return nil
	}

	c.data.AddData(values)
	c.logger.Debug("fetched device data", "interface", c.iface, "values", len(values))
	return nil
}

// parseDeviceData decodes the script output. The hub returns the object
// as a JSON string; an object result is accepted as well.
func parseDeviceData(raw json.RawMessage) (map[string]any, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		raw = json.RawMessage(text)
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}

	out := make(map[string]any, len(values))
	for key, value := range values {
		if s, ok := value.(string); ok {
			if unescaped, err := url.PathUnescape(s); err == nil {
				value = unescaped
			}
		}
		out[key] = value
	}
	return out, nil
}

// GetValue reads one parameter from the hub. MASTER parameters use the
// master value method, everything else the live value method.
func (c *Client) GetValue(ctx context.Context, channelAddress, paramsetKey, parameter string) (any, error) {
	method := methodInterfaceGetValue
	if paramsetKey == cache.ParamsetMaster {
		method = methodInterfaceGetMasterVal
	}

	var value any
	err := c.call(ctx, method, jsonrpc.Params{
		"interface": c.iface,
		"address":   channelAddress,
		"valueKey":  parameter,
	}, &value)
	if err != nil {
		return nil, err
	}
	return value, nil
}
