package ccu

import (
	"context"
	"fmt"

	"github.com/nerrad567/gray-logic-ccu/internal/jsonrpc"
)

// Hub methods used by the client.
const (
	methodDeviceListAllDetail   = "Device.listAllDetail"
	methodRoomGetAll            = "Room.getAll"
	methodSubsectionGetAll      = "Subsection.getAll"
	methodReGaRunScript         = "ReGa.runScript"
	methodInterfaceGetValue     = "Interface.getValue"
	methodInterfaceGetMasterVal = "Interface.getMasterValue"
)

// Caller issues JSON-RPC calls. Satisfied by *jsonrpc.Client.
type Caller interface {
	Call(ctx context.Context, method string, params jsonrpc.Params, opts jsonrpc.CallOptions) jsonrpc.Response
}

// DetailsStore receives device metadata. Satisfied by *cache.DeviceDetails.
type DetailsStore interface {
	AddName(address, name string)
	AddInterface(address, iface string)
	AddDeviceChannelID(address, channelID string)
	DeviceChannelIDs() map[string]string
}

// DataStore receives bulk device values. Satisfied by *cache.CentralData.
type DataStore interface {
	AddData(values map[string]any)
}

// Logger defines the logging interface used by the Client.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Client fetches data for one hub interface over a shared session.
// All calls keep the session open.
type Client struct {
	iface   string
	rpc     Caller
	details DetailsStore
	data    DataStore
	logger  Logger
}

// New creates a Client for interface iface.
func New(iface string, rpc Caller, details DetailsStore, data DataStore) *Client {
	return &Client{
		iface:   iface,
		rpc:     rpc,
		details: details,
		data:    data,
		logger:  noopLogger{},
	}
}

// SetLogger sets the logger for the client. Call before first use.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// Interface returns the hub interface name this client serves.
func (c *Client) Interface() string {
	return c.iface
}

// call issues method and decodes the result into out (skipped when out is nil).
func (c *Client) call(ctx context.Context, method string, params jsonrpc.Params, out any) error {
	resp := c.rpc.Call(ctx, method, params, jsonrpc.CallOptions{KeepSession: true})
	if !resp.OK() {
		return fmt.Errorf("%w: %s: %s", ErrHubError, method, resp.ErrorText())
	}
	if out == nil {
		return nil
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, method, err)
	}
	return nil
}
