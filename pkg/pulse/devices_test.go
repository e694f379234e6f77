package pulse

import (
	"testing"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

const sinkListJSON = `[
	{
		"index": 55,
		"state": "SUSPENDED",
		"name": "alsa_output.pci-0000_00_1f.3.analog-stereo",
		"description": "Built-in Audio Analog Stereo",
		"properties": {
			"device.description": "Built-in Audio"
		},
		"ports": [
			{"name": "analog-output-speaker", "description": "Speakers", "availability": "available"},
			{"name": "analog-output-headphones", "description": "Headphones", "availability": "not available"}
		],
		"active_port": "analog-output-speaker"
	},
	{
		"index": 60,
		"state": "RUNNING",
		"name": "alsa_output.usb-Headset-00.analog-stereo",
		"description": "Headset Analog Stereo",
		"properties": {
			"device.description": "Headset"
		},
		"ports": [
			{"name": "analog-output-headphones", "description": "Headphones", "availability": "not available"}
		],
		"active_port": "analog-output-headphones"
	}
]`

func TestDevicesFromJSON(t *testing.T) {
	devices, err := devicesFromJSON([]byte(sinkListJSON), audiodeck.DirectionOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}

	builtin := devices[0]
	if builtin.ID != "alsa_output.pci-0000_00_1f.3.analog-stereo" {
		t.Errorf("id = %q", builtin.ID)
	}
	if builtin.InterfaceName != "Built-in Audio" {
		t.Errorf("interfaceName = %q, want card description", builtin.InterfaceName)
	}
	if builtin.EndpointName != "Speakers" {
		t.Errorf("endpointName = %q, want active port description", builtin.EndpointName)
	}
	if builtin.Direction != audiodeck.DirectionOutput {
		t.Errorf("direction = %q", builtin.Direction)
	}
	if builtin.State != audiodeck.StateConnected {
		t.Errorf("state = %q, want connected for suspended sink", builtin.State)
	}

	headset := devices[1]
	if headset.State != audiodeck.StateDisconnected {
		t.Errorf("state = %q, want disconnected for unplugged active port", headset.State)
	}
}

func TestDevicesFromJSONMinimalFields(t *testing.T) {
	devices, err := devicesFromJSON([]byte(`[{"name":"sink0","description":"Null Output","state":"IDLE"}]`), audiodeck.DirectionOutput)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	dev := devices[0]
	if dev.InterfaceName != "Null Output" {
		t.Errorf("interfaceName = %q, want description fallback", dev.InterfaceName)
	}
	if dev.EndpointName != "Null Output" {
		t.Errorf("endpointName = %q, want description fallback", dev.EndpointName)
	}
	if dev.State != audiodeck.StateConnected {
		t.Errorf("state = %q, want connected", dev.State)
	}
}

func TestDevicesFromJSONGarbage(t *testing.T) {
	if _, err := devicesFromJSON([]byte(`{"not":"a list"}`), audiodeck.DirectionOutput); err == nil {
		t.Error("expected error for non-array output")
	}
}
