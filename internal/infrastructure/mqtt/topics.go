package mqtt

import "fmt"

// TopicPrefix is the root of every ccusync topic.
const TopicPrefix = "ccusync"

// Topics builds ccusync MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.CentralStatus("ccu")  // "ccusync/central/ccu/status"
type Topics struct{}

// SystemStatus returns the retained process status topic (also the LWT topic).
//
// Example: ccusync/system/status
func (Topics) SystemStatus() string {
	return TopicPrefix + "/system/status"
}

// CentralStatus returns the retained cache status topic of a central.
//
// Example: ccusync/central/ccu/status
func (Topics) CentralStatus(central string) string {
	return fmt.Sprintf("%s/central/%s/status", TopicPrefix, central)
}

// CentralRefresh returns the command topic that forces an entity refresh.
//
// Example: ccusync/central/ccu/refresh
func (Topics) CentralRefresh(central string) string {
	return fmt.Sprintf("%s/central/%s/refresh", TopicPrefix, central)
}
