package central

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nerrad567/gray-logic-ccu/internal/cache"
	"github.com/nerrad567/gray-logic-ccu/internal/jsonrpc"
)

const (
	listAllDetail = `[
  {"id":"1000","name":"Living Thermostat","address":"000A1","interface":"HmIP-RF","channels":[
    {"id":"1001","name":"Living Thermostat:0","address":"000A1:0"},
    {"id":"1002","name":"Living Thermostat:1","address":"000A1:1"}
  ]},
  {"id":"2000","name":"Hall Switch","address":"LEQ01","interface":"BidCos-RF","channels":[
    {"id":"2001","name":"Hall Switch:1","address":"LEQ01:1"}
  ]}
]`
	roomGetAll       = `[{"id":"r1","name":"Living","channelIds":["1001","1002"]},{"id":"r2","name":"Hall","channelIds":["2001"]}]`
	subsectionGetAll = `[{"id":"f1","name":"Heating","channelIds":["1002"]},{"id":"f2","name":"Climate","channelIds":["1002"]}]`
	hmipData         = `"{\"HmIP-RF.000A1%3A1.ACTUAL_TEMPERATURE\":21.5,\"HmIP-RF.000A1%3A1.SET_POINT_MODE\":1}"`
	bidcosData       = `{"BidCos-RF.LEQ01%3A1.STATE":true}`
)

// fakeHub is a SessionClient answering from a method table.
type fakeHub struct {
	mu        sync.Mutex
	responses map[string]jsonrpc.Response
	scripts   map[string]string // interface -> script result
	calls     []string
	activated bool
	logouts   int
	gate      chan struct{}
}

func newFakeHub() *fakeHub {
	h := &fakeHub{
		responses: make(map[string]jsonrpc.Response),
		scripts: map[string]string{
			cache.InterfaceHmIPRF:   hmipData,
			cache.InterfaceBidCosRF: bidcosData,
		},
	}
	h.ok("Device.listAllDetail", listAllDetail)
	h.ok("Room.getAll", roomGetAll)
	h.ok("Subsection.getAll", subsectionGetAll)
	return h
}

func (h *fakeHub) ok(method, result string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses[method] = jsonrpc.Response{Result: json.RawMessage(result)}
}

func (h *fakeHub) fail(method string, err any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses[method] = jsonrpc.Response{Error: err, Result: json.RawMessage(`{}`)}
}

// hold makes every Call wait until release is called.
func (h *fakeHub) hold() (release func()) {
	gate := make(chan struct{})
	h.mu.Lock()
	h.gate = gate
	h.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (h *fakeHub) Call(_ context.Context, method string, params jsonrpc.Params, _ jsonrpc.CallOptions) jsonrpc.Response {
	h.mu.Lock()
	gate := h.gate
	h.mu.Unlock()
	if gate != nil {
		<-gate
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, method)
	h.activated = true

	if resp, ok := h.responses[method]; ok {
		return resp
	}
	if method == "ReGa.runScript" {
		script, _ := params["script"].(string)
		for iface, result := range h.scripts {
			if strings.Contains(script, `interfaces.Get("`+iface+`")`) {
				return jsonrpc.Response{Result: json.RawMessage(result)}
			}
		}
		return jsonrpc.Response{Result: json.RawMessage(`""`)}
	}
	return jsonrpc.Response{Result: json.RawMessage(`null`)}
}

func (h *fakeHub) IsActivated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activated
}

func (h *fakeHub) Logout(context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activated = false
	h.logouts++
}

func (h *fakeHub) count(method string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.calls {
		if m == method {
			n++
		}
	}
	return n
}

// fakePublisher records published status documents.
type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) PublishCentralStatus(_ string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

func (p *fakePublisher) last(t *testing.T) Status {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	require.NotEmpty(t, p.payloads, "no status published")
	var status Status
	require.NoError(t, json.Unmarshal(p.payloads[len(p.payloads)-1], &status))
	return status
}

// fakeMetrics records cache load points.
type fakeMetrics struct {
	mu     sync.Mutex
	points []metricPoint
}

type metricPoint struct {
	central string
	cache   string
	entries int
	success bool
}

func (m *fakeMetrics) WriteCacheLoad(central, cacheName string, _ time.Duration, entries int, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = append(m.points, metricPoint{central: central, cache: cacheName, entries: entries, success: success})
}

func (m *fakeMetrics) snapshot() []metricPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]metricPoint(nil), m.points...)
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

// fakeDevice is a cache.Device with fixed addresses.
type fakeDevice struct {
	address  string
	channels []string
}

func (d fakeDevice) DeviceAddress() string      { return d.address }
func (d fakeDevice) ChannelAddresses() []string { return d.channels }

// fixture bundles a central with its fakes.
type fixture struct {
	central   *Central
	hub       *fakeHub
	publisher *fakePublisher
	metrics   *fakeMetrics
	clock     *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		hub:       newFakeHub(),
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
		clock:     newFakeClock(),
	}
	c, err := New(Options{
		Name:            "ccu",
		Interfaces:      []string{cache.InterfaceHmIPRF, cache.InterfaceBidCosRF},
		RPC:             f.hub,
		MaxAge:          time.Minute,
		RefreshInterval: time.Minute,
		Publisher:       f.publisher,
		Metrics:         f.metrics,
		Now:             f.clock.Now,
	})
	require.NoError(t, err)
	f.central = c
	return f
}

var bg = context.Background()
