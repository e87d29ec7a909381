package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the CCU sync service.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Central  CentralConfig  `yaml:"central"`
	CCU      CCUConfig      `yaml:"ccu"`
	Cache    CacheConfig    `yaml:"cache"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CentralConfig identifies the central unit and the hub interfaces it mirrors.
type CentralConfig struct {
	Name string `yaml:"name"`

	// Interfaces lists the hub interfaces to fetch device data for
	// (e.g., "HmIP-RF", "BidCos-RF", "BidCos-Wired", "VirtualDevices").
	// The first of HmIP-RF / BidCos-RF present becomes the primary interface.
	Interfaces []string `yaml:"interfaces"`
}

// CCUConfig contains the JSON-RPC connection settings for the hub.
type CCUConfig struct {
	Host     string `yaml:"host"`
	JSONPort int    `yaml:"json_port"` // 0 means scheme default
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// TLS selects https for the JSON-RPC endpoint.
	TLS bool `yaml:"tls"`

	// VerifyTLS enables certificate and hostname verification.
	// CCUs ship with self-signed certificates, so the default is false.
	VerifyTLS bool `yaml:"verify_tls"`

	// Timeout bounds every hub round-trip, in seconds.
	Timeout int `yaml:"timeout"`

	// MaxConnections caps concurrent HTTP connections to the hub.
	MaxConnections int `yaml:"max_connections"`
}

// CacheConfig contains staleness settings for the caches.
type CacheConfig struct {
	// MaxAge is the staleness window in seconds.
	MaxAge int `yaml:"max_age"`

	// RefreshInterval is how often the central reloads its caches, in seconds.
	RefreshInterval int `yaml:"refresh_interval"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled   bool                `yaml:"enabled"`
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
}

// InfluxDBConfig contains InfluxDB connection settings.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: CCUSYNC_SECTION_KEY
// For example: CCUSYNC_CCU_HOST, CCUSYNC_CCU_PASSWORD
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Central: CentralConfig{
			Name:       "ccu",
			Interfaces: []string{"HmIP-RF", "BidCos-RF"},
		},
		CCU: CCUConfig{
			Host:           "localhost",
			Username:       "Admin",
			Timeout:        30,
			MaxConnections: 3,
		},
		Cache: CacheConfig{
			MaxAge:          60,
			RefreshInterval: 60,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "ccusync",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: CCUSYNC_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// CCU
	if v := os.Getenv("CCUSYNC_CCU_HOST"); v != "" {
		cfg.CCU.Host = v
	}
	if v := os.Getenv("CCUSYNC_CCU_USERNAME"); v != "" {
		cfg.CCU.Username = v
	}
	if v := os.Getenv("CCUSYNC_CCU_PASSWORD"); v != "" {
		cfg.CCU.Password = v
	}

	// MQTT
	if v := os.Getenv("CCUSYNC_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("CCUSYNC_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("CCUSYNC_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("CCUSYNC_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// Missing CCU credentials are not a validation error; the session client
// reports them on every call instead.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Central.Name == "" {
		errs = append(errs, "central.name is required")
	}
	if len(c.Central.Interfaces) == 0 {
		errs = append(errs, "central.interfaces must list at least one interface")
	}

	if c.CCU.Host == "" {
		errs = append(errs, "ccu.host is required")
	}
	if c.CCU.JSONPort < 0 || c.CCU.JSONPort > 65535 {
		errs = append(errs, "ccu.json_port must be between 0 and 65535")
	}
	if c.CCU.Timeout <= 0 {
		errs = append(errs, "ccu.timeout must be positive")
	}
	if c.CCU.MaxConnections <= 0 {
		errs = append(errs, "ccu.max_connections must be positive")
	}

	if c.Cache.MaxAge <= 0 {
		errs = append(errs, "cache.max_age must be positive")
	}
	if c.Cache.RefreshInterval <= 0 {
		errs = append(errs, "cache.refresh_interval must be positive")
	}
	if c.Cache.MaxAge > 0 && c.Cache.RefreshInterval > c.Cache.MaxAge {
		errs = append(errs, "cache.refresh_interval must not exceed cache.max_age")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.InfluxDB.Enabled && c.InfluxDB.URL == "" {
		errs = append(errs, "influxdb.url is required when influxdb is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetTimeout returns the hub request timeout as a Duration.
func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.CCU.Timeout) * time.Second
}

// GetMaxCacheAge returns the cache staleness window as a Duration.
func (c *Config) GetMaxCacheAge() time.Duration {
	return time.Duration(c.Cache.MaxAge) * time.Second
}

// GetRefreshInterval returns the cache reload interval as a Duration.
func (c *Config) GetRefreshInterval() time.Duration {
	return time.Duration(c.Cache.RefreshInterval) * time.Second
}
