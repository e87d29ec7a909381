// Package config handles loading and validating the CCU sync configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - CCU and MQTT passwords and the InfluxDB token should be set via
//     environment variables (CCUSYNC_CCU_PASSWORD, CCUSYNC_MQTT_PASSWORD,
//     CCUSYNC_INFLUXDB_TOKEN)
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.CCU.Host)
package config
