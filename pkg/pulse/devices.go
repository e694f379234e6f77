package pulse

import (
	"encoding/json"
	"fmt"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

type pactlPort struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Availability string `json:"availability"`
}

type pactlDevice struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	State       string            `json:"state"`
	Properties  map[string]string `json:"properties"`
	Ports       []pactlPort       `json:"ports"`
	ActivePort  string            `json:"active_port"`
}

func devicesFromJSON(data []byte, direction audiodeck.Direction) ([]audiodeck.Device, error) {
	var raw []pactlDevice
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal pactl output: %w", err)
	}

	out := make([]audiodeck.Device, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.toDevice(direction))
	}

	return out, nil
}

func (d pactlDevice) toDevice(direction audiodeck.Direction) audiodeck.Device {
	dev := audiodeck.Device{
		ID:            d.Name,
		InterfaceName: d.Properties["device.description"],
		EndpointName:  d.Description,
		DisplayName:   d.Description,
		Direction:     direction,
		State:         deviceState(d),
	}

	// the active port is the closest thing pulse has to a WASAPI endpoint
	// name ("Speakers", "Headphones")
	for _, port := range d.Ports {
		if port.Name == d.ActivePort && port.Description != "" {
			dev.EndpointName = port.Description
			break
		}
	}

	if dev.InterfaceName == "" {
		dev.InterfaceName = d.Description
	}

	return dev
}

func deviceState(d pactlDevice) audiodeck.DeviceState {
	// pactl only lists devices the server knows right now; anything here is
	// usable unless its active port reports unplugged hardware
	for _, port := range d.Ports {
		if port.Name != d.ActivePort {
			continue
		}
		if port.Availability == "not available" {
			return audiodeck.StateDisconnected
		}
	}

	switch d.State {
	case "RUNNING", "IDLE", "SUSPENDED":
		return audiodeck.StateConnected
	case "":
		return audiodeck.StateUnknown
	}
	return audiodeck.StateUnknown
}
