package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
central:
  name: "test-ccu"
  interfaces: ["HmIP-RF", "BidCos-RF", "VirtualDevices"]
ccu:
  host: "ccu.local"
  json_port: 443
  username: "Admin"
  password: "secret"
  tls: true
  verify_tls: false
cache:
  max_age: 120
  refresh_interval: 90
mqtt:
  broker:
    host: "localhost"
    port: 1883
    client_id: "test-client"
  qos: 1
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Central.Name != "test-ccu" {
		t.Errorf("Central.Name = %q, want %q", cfg.Central.Name, "test-ccu")
	}

	if len(cfg.Central.Interfaces) != 3 {
		t.Errorf("len(Central.Interfaces) = %d, want 3", len(cfg.Central.Interfaces))
	}

	if cfg.CCU.Host != "ccu.local" {
		t.Errorf("CCU.Host = %q, want %q", cfg.CCU.Host, "ccu.local")
	}

	if !cfg.CCU.TLS || cfg.CCU.VerifyTLS {
		t.Errorf("CCU.TLS/VerifyTLS = %v/%v, want true/false", cfg.CCU.TLS, cfg.CCU.VerifyTLS)
	}

	if cfg.GetMaxCacheAge() != 2*time.Minute {
		t.Errorf("GetMaxCacheAge() = %v, want 2m", cfg.GetMaxCacheAge())
	}

	if cfg.GetRefreshInterval() != 90*time.Second {
		t.Errorf("GetRefreshInterval() = %v, want 90s", cfg.GetRefreshInterval())
	}

	// Unset keys keep their defaults
	if cfg.CCU.MaxConnections != 3 {
		t.Errorf("CCU.MaxConnections = %d, want default 3", cfg.CCU.MaxConnections)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("invalid: [yaml: content"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	content := `
central:
  name: ""
ccu:
  host: "ccu.local"
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() expected validation error for empty central.name, got nil")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing credentials are allowed",
			mutate:  func(c *Config) { c.CCU.Username = ""; c.CCU.Password = "" },
			wantErr: false,
		},
		{
			name:    "missing central name",
			mutate:  func(c *Config) { c.Central.Name = "" },
			wantErr: true,
		},
		{
			name:    "no interfaces",
			mutate:  func(c *Config) { c.Central.Interfaces = nil },
			wantErr: true,
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.CCU.Host = "" },
			wantErr: true,
		},
		{
			name:    "port high",
			mutate:  func(c *Config) { c.CCU.JSONPort = 70000 },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.CCU.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero max connections",
			mutate:  func(c *Config) { c.CCU.MaxConnections = 0 },
			wantErr: true,
		},
		{
			name:    "zero max age",
			mutate:  func(c *Config) { c.Cache.MaxAge = 0 },
			wantErr: true,
		},
		{
			name:    "refresh interval exceeds max age",
			mutate:  func(c *Config) { c.Cache.MaxAge = 60; c.Cache.RefreshInterval = 300 },
			wantErr: true,
		},
		{
			name:    "refresh interval equals max age",
			mutate:  func(c *Config) { c.Cache.MaxAge = 120; c.Cache.RefreshInterval = 120 },
			wantErr: false,
		},
		{
			name:    "invalid QoS",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: true,
		},
		{
			name:    "influxdb enabled without url",
			mutate:  func(c *Config) { c.InfluxDB.Enabled = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := &Config{
		CCU:   CCUConfig{Timeout: 30},
		Cache: CacheConfig{MaxAge: 60, RefreshInterval: 45},
	}

	if got := cfg.GetTimeout().Seconds(); got != 30 {
		t.Errorf("GetTimeout() = %v, want 30", got)
	}

	if got := cfg.GetMaxCacheAge().Seconds(); got != 60 {
		t.Errorf("GetMaxCacheAge() = %v, want 60", got)
	}

	if got := cfg.GetRefreshInterval().Seconds(); got != 45 {
		t.Errorf("GetRefreshInterval() = %v, want 45", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := defaultConfig()

	t.Setenv("CCUSYNC_CCU_HOST", "192.168.1.10")
	t.Setenv("CCUSYNC_CCU_USERNAME", "ccuuser")
	t.Setenv("CCUSYNC_CCU_PASSWORD", "ccupass")
	t.Setenv("CCUSYNC_MQTT_HOST", "mqtt.example.com")
	t.Setenv("CCUSYNC_MQTT_USERNAME", "testuser")
	t.Setenv("CCUSYNC_MQTT_PASSWORD", "testpass")
	t.Setenv("CCUSYNC_INFLUXDB_TOKEN", "secret-token")

	applyEnvOverrides(cfg)

	if cfg.CCU.Host != "192.168.1.10" {
		t.Errorf("CCU.Host = %q, want %q", cfg.CCU.Host, "192.168.1.10")
	}

	if cfg.CCU.Username != "ccuuser" {
		t.Errorf("CCU.Username = %q, want %q", cfg.CCU.Username, "ccuuser")
	}

	if cfg.CCU.Password != "ccupass" {
		t.Errorf("CCU.Password = %q, want %q", cfg.CCU.Password, "ccupass")
	}

	if cfg.MQTT.Broker.Host != "mqtt.example.com" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "mqtt.example.com")
	}

	if cfg.MQTT.Auth.Username != "testuser" {
		t.Errorf("MQTT.Auth.Username = %q, want %q", cfg.MQTT.Auth.Username, "testuser")
	}

	if cfg.MQTT.Auth.Password != "testpass" {
		t.Errorf("MQTT.Auth.Password = %q, want %q", cfg.MQTT.Auth.Password, "testpass")
	}

	if cfg.InfluxDB.Token != "secret-token" {
		t.Errorf("InfluxDB.Token = %q, want %q", cfg.InfluxDB.Token, "secret-token")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Central.Name == "" {
		t.Error("defaultConfig should have non-empty Central.Name")
	}

	if cfg.CCU.Username != "Admin" {
		t.Errorf("defaultConfig CCU.Username = %q, want Admin", cfg.CCU.Username)
	}

	if cfg.CCU.MaxConnections != 3 {
		t.Errorf("defaultConfig CCU.MaxConnections = %d, want 3", cfg.CCU.MaxConnections)
	}

	if cfg.Cache.MaxAge != 60 {
		t.Errorf("defaultConfig Cache.MaxAge = %d, want 60", cfg.Cache.MaxAge)
	}

	if cfg.Cache.RefreshInterval > cfg.Cache.MaxAge {
		t.Errorf("defaultConfig Cache.RefreshInterval = %d exceeds MaxAge %d",
			cfg.Cache.RefreshInterval, cfg.Cache.MaxAge)
	}

	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("defaultConfig MQTT.Broker.Port = %d, want 1883", cfg.MQTT.Broker.Port)
	}
}
