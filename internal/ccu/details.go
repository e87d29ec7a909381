package ccu

import "context"

// deviceDetail is one entry of Device.listAllDetail.
type deviceDetail struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Interface string          `json:"interface"`
	Channels  []channelDetail `json:"channels"`
}

type channelDetail struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// labelGroup is one entry of Room.getAll or Subsection.getAll.
type labelGroup struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ChannelIDs []string `json:"channelIds"`
}

// FetchDeviceDetails loads names, interfaces and channel ids of every
// device and channel into the details store.
func (c *Client) FetchDeviceDetails(ctx context.Context) error {
	var devices []deviceDetail
	if err := c.call(ctx, methodDeviceListAllDetail, nil, &devices); err != nil {
		return err
	}

	for _, device := range devices {
		c.details.AddName(device.Address, device.Name)
		c.details.AddDeviceChannelID(device.Address, device.ID)
		for _, channel := range device.Channels {
			c.details.AddName(channel.Address, channel.Name)
			c.details.AddDeviceChannelID(channel.Address, channel.ID)
		}
		c.details.AddInterface(device.Address, device.Interface)
	}

	c.logger.Debug("fetched device details", "interface", c.iface, "devices", len(devices))
	return nil
}

// GetAllRooms returns address -> room names.
func (c *Client) GetAllRooms(ctx context.Context) (map[string][]string, error) {
	return c.labelsByAddress(ctx, methodRoomGetAll)
}

// GetAllFunctions returns address -> function names.
func (c *Client) GetAllFunctions(ctx context.Context) (map[string][]string, error) {
	return c.labelsByAddress(ctx, methodSubsectionGetAll)
}

// labelsByAddress maps the hub's channel-id keyed groups onto addresses
// using the known channel ids.
func (c *Client) labelsByAddress(ctx context.Context, method string) (map[string][]string, error) {
	var groups []labelGroup
	if err := c.call(ctx, method, nil, &groups); err != nil {
		return nil, err
	}

	byChannelID := make(map[string][]string)
	for _, group := range groups {
		for _, id := range group.ChannelIDs {
			byChannelID[id] = append(byChannelID[id], group.Name)
		}
	}

	out := make(map[string][]string)
	for address, channelID := range c.details.DeviceChannelIDs() {
		if names, ok := byChannelID[channelID]; ok {
			out[address] = names
		}
	}
	return out, nil
}
