// Package mqtt publishes ccusync status to an MQTT broker and receives
// refresh commands.
//
// Topics:
//
//	ccusync/system/status            retained online/offline, also the LWT
//	ccusync/central/<name>/status    retained cache status JSON per central
//	ccusync/central/<name>/refresh   command: reload entity values
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.PublishCentralStatus("ccu", payload)
package mqtt
