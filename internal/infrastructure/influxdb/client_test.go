package influxdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"

	"github.com/nerrad567/gray-logic-ccu/internal/infrastructure/config"
)

const testURL = "http://influx.test"

func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           testURL,
		Token:         "test-token",
		Org:           "ccusync",
		Bucket:        "metrics",
		BatchSize:     1,
		FlushInterval: 1,
	}
}

// stubServer answers ping and collects written line protocol.
type stubServer struct {
	mu     sync.Mutex
	writes []string
}

func newStub(t *testing.T, pingStatus int) (*stubServer, *http.Client) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	stub := &stubServer{}

	transport.RegisterResponder(http.MethodGet, testURL+"/ping", httpmock.NewStringResponder(pingStatus, ""))
	transport.RegisterRegexpResponder(http.MethodPost, regexp.MustCompile(`^`+testURL+`/api/v2/write`),
		func(req *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}
			stub.mu.Lock()
			stub.writes = append(stub.writes, string(body))
			stub.mu.Unlock()
			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	return stub, &http.Client{Transport: transport}
}

func (s *stubServer) body() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.writes, "\n")
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := Connect(context.Background(), cfg)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_PingFails(t *testing.T) {
	_, httpClient := newStub(t, http.StatusServiceUnavailable)

	_, err := connect(context.Background(), testConfig(), httpClient)
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestWriteCacheLoad(t *testing.T) {
	stub, httpClient := newStub(t, http.StatusNoContent)

	client, err := connect(context.Background(), testConfig(), httpClient)
	if err != nil {
		t.Fatalf("connect() error = %v", err)
	}
	defer client.Close()

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	client.WriteCacheLoad("ccu", "central_data", 1500*time.Millisecond, 42, true)
	client.Flush()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(stub.body(), "cache_load") && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	body := stub.body()
	for _, want := range []string{"cache_load,", "cache=central_data", "central=ccu", "duration_ms=1500", "entries=42i", "success=true"} {
		if !strings.Contains(body, want) {
			t.Errorf("written line protocol %q missing %q", body, want)
		}
	}
}

func TestWriteCacheLoad_AfterClose(t *testing.T) {
	stub, httpClient := newStub(t, http.StatusNoContent)

	client, err := connect(context.Background(), testConfig(), httpClient)
	if err != nil {
		t.Fatalf("connect() error = %v", err)
	}
	client.Close()

	client.WriteCacheLoad("ccu", "device_details", time.Second, 1, false)
	client.Flush()

	if body := stub.body(); body != "" {
		t.Errorf("write after Close produced %q", body)
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() after Close error = %v, want ErrNotConnected", err)
	}
}

func TestCacheLoadPoint(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	point := cacheLoadPoint("ccu", "device_details", 250*time.Millisecond, 7, false, ts)

	if point.Name() != measurementCacheLoad {
		t.Errorf("Name() = %q, want %q", point.Name(), measurementCacheLoad)
	}
	if !point.Time().Equal(ts) {
		t.Errorf("Time() = %v, want %v", point.Time(), ts)
	}

	tags := map[string]string{}
	for _, tag := range point.TagList() {
		tags[tag.Key] = tag.Value
	}
	if tags["central"] != "ccu" || tags["cache"] != "device_details" {
		t.Errorf("tags = %v", tags)
	}

	fields := map[string]any{}
	for _, field := range point.FieldList() {
		fields[field.Key] = field.Value
	}
	if fields["duration_ms"] != 250.0 {
		t.Errorf("duration_ms = %v, want 250", fields["duration_ms"])
	}
	if fields["entries"] != int64(7) {
		t.Errorf("entries = %v (%T), want 7", fields["entries"], fields["entries"])
	}
	if fields["success"] != false {
		t.Errorf("success = %v, want false", fields["success"])
	}
}

func TestClose_Nil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
