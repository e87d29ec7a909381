package central

import (
	"encoding/json"
	"time"
)

// Central states reported in status documents.
const (
	StateRunning = "running"
	StateStopped = "stopped"
)

// CacheStatus describes one cache in a status document.
type CacheStatus struct {
	Entries     int        `json:"entries"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

// Status is the retained status document of a central.
type Status struct {
	Central       string      `json:"central"`
	State         string      `json:"state"`
	RunID         string      `json:"run_id,omitempty"`
	SessionActive bool        `json:"session_active"`
	DeviceDetails CacheStatus `json:"device_details"`
	CentralData   CacheStatus `json:"central_data"`
	LastLoadOK    bool        `json:"last_load_ok"`
	LastError     string      `json:"last_error,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// Status returns a snapshot of the central in state.
func (c *Central) Status(state string) Status {
	c.lastLoadMu.RLock()
	last := c.lastLoad
	c.lastLoadMu.RUnlock()

	status := Status{
		Central:       c.name,
		State:         state,
		RunID:         last.runID,
		SessionActive: c.rpc.IsActivated(),
		DeviceDetails: CacheStatus{
			Entries:     c.details.Len(),
			LastUpdated: timePtr(c.details.LastUpdated()),
		},
		CentralData: CacheStatus{
			Entries:     c.data.Len(),
			LastUpdated: timePtr(c.data.LastUpdated()),
		},
		LastLoadOK: !last.at.IsZero() && last.err == nil,
		Timestamp:  c.now().UTC(),
	}
	if last.err != nil {
		status.LastError = last.err.Error()
	}
	return status
}

// publishStatus publishes the status document (best effort).
func (c *Central) publishStatus(state string) {
	if c.publisher == nil {
		return
	}

	payload, err := json.Marshal(c.Status(state))
	if err != nil {
		c.logger.Error("failed to marshal status", "central", c.name, "error", err)
		return
	}
	if err := c.publisher.PublishCentralStatus(c.name, payload); err != nil {
		c.logger.Warn("failed to publish status", "central", c.name, "error", err)
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
