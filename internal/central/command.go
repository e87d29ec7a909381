package central

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/nerrad567/gray-logic-ccu/internal/cache"
)

// RefreshCommand is the payload of the refresh command topic.
// An empty payload refreshes every readable entity.
//
//	{"paramset_key": "VALUES"}
type RefreshCommand struct {
	ParamsetKey string `json:"paramset_key"`
}

// ParseRefreshCommand decodes a refresh command payload.
func ParseRefreshCommand(payload []byte) (RefreshCommand, error) {
	var cmd RefreshCommand
	if len(bytes.TrimSpace(payload)) == 0 {
		return cmd, nil
	}
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return cmd, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	switch cmd.ParamsetKey {
	case "", cache.ParamsetValues, cache.ParamsetMaster:
		return cmd, nil
	default:
		return cmd, fmt.Errorf("%w: unknown paramset key %q", ErrInvalidCommand, cmd.ParamsetKey)
	}
}

// RefreshHandler returns a message handler that starts Refresh in the
// background for every valid command and returns without waiting for it.
// Refreshes run with ctx and are awaited by Stop; commands arriving after
// Stop are dropped.
func (c *Central) RefreshHandler(ctx context.Context) func(topic string, payload []byte) error {
	return func(topic string, payload []byte) error {
		cmd, err := ParseRefreshCommand(payload)
		if err != nil {
			return err
		}

		c.startMu.Lock()
		if c.stopped {
			c.startMu.Unlock()
			c.logger.Warn("refresh ignored, central stopped", "central", c.name, "topic", topic)
			return nil
		}
		c.wg.Add(1)
		c.startMu.Unlock()

		c.logger.Info("refresh requested", "central", c.name, "topic", topic, "paramset", cmd.ParamsetKey)
		go func() {
			defer c.wg.Done()
			c.Refresh(ctx, cmd.ParamsetKey)
		}()
		return nil
	}
}
