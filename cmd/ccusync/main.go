// ccusync keeps the device metadata and live values of a CCU hub cached
// and fresh.
//
// It logs into the hub's JSON-RPC API, reloads the device details and the
// central data caches on a fixed interval, publishes cache status over
// MQTT and records every cache load in InfluxDB. MQTT and InfluxDB are
// optional.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nerrad567/gray-logic-ccu/internal/central"
	"github.com/nerrad567/gray-logic-ccu/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-ccu/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-ccu/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-ccu/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-ccu/internal/jsonrpc"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	// defaultConfigPath is used when CCUSYNC_CONFIG is unset.
	defaultConfigPath = "configs/config.yaml"

	// shutdownTimeout bounds the logout and final status publish.
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the service together and blocks until ctx is cancelled.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting ccusync",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// MQTT (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		mqttClient.SetLogger(log)
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", mqttClient.ClientID(),
		)
	} else {
		log.Info("MQTT disabled")
	}

	// InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	if err := healthCheck(ctx, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	rpc := jsonrpc.New(jsonrpc.Config{
		Host:           cfg.CCU.Host,
		Port:           cfg.CCU.JSONPort,
		Username:       cfg.CCU.Username,
		Password:       cfg.CCU.Password,
		TLS:            cfg.CCU.TLS,
		VerifyTLS:      cfg.CCU.VerifyTLS,
		Timeout:        cfg.GetTimeout(),
		MaxConnections: cfg.CCU.MaxConnections,
	})
	rpc.SetLogger(log)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		rpc.Close(closeCtx)
	}()
	log.Info("hub client ready", "url", rpc.URL())

	c, err := newCentral(cfg, rpc, mqttClient, influxClient, log)
	if err != nil {
		return fmt.Errorf("creating central: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("starting central: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Stop(stopCtx)
	}()

	if mqttClient != nil {
		topic := mqtt.Topics{}.CentralRefresh(c.Name())
		if err := mqttClient.Subscribe(topic, byte(cfg.MQTT.QoS), c.RefreshHandler(ctx)); err != nil {
			return fmt.Errorf("subscribing to refresh commands: %w", err)
		}
		log.Info("listening for refresh commands", "topic", topic)
	}

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")

	// Deferred calls run in reverse order:
	// 1. central (logout, clear caches, final status)
	// 2. hub client
	// 3. InfluxDB (if enabled)
	// 4. MQTT (if enabled)

	return nil
}

// newCentral builds the central. Optional sinks stay nil interfaces when
// disabled.
func newCentral(cfg *config.Config, rpc *jsonrpc.Client, mqttClient *mqtt.Client, influxClient *influxdb.Client, log *logging.Logger) (*central.Central, error) {
	opts := central.Options{
		Name:            cfg.Central.Name,
		Interfaces:      cfg.Central.Interfaces,
		RPC:             rpc,
		MaxAge:          cfg.GetMaxCacheAge(),
		RefreshInterval: cfg.GetRefreshInterval(),
		Logger:          log,
	}
	if mqttClient != nil {
		opts.Publisher = mqttClient
	}
	if influxClient != nil {
		opts.Metrics = influxClient
	}
	return central.New(opts)
}

// getConfigPath returns CCUSYNC_CONFIG if set, otherwise the default path.
func getConfigPath() string {
	if path := os.Getenv("CCUSYNC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies the enabled infrastructure connections.
// Either client may be nil when disabled.
func healthCheck(ctx context.Context, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}
