package audiodeck

import "encoding/json"

// Deck event names, as delivered on the host socket.
const (
	EventKeyDown            = "keyDown"
	EventKeyUp              = "keyUp"
	EventWillAppear         = "willAppear"
	EventWillDisappear      = "willDisappear"
	EventDidReceiveSettings = "didReceiveSettings"
	EventSendToPlugin       = "sendToPlugin"
)

// Event is one host callback.
type Event struct {
	Event   string          `json:"event"`
	Action  string          `json:"action,omitempty"`
	Context string          `json:"context,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// KeyPayload is the payload of key and lifecycle events. State is the host's
// last-known visual state and only means anything for toggle buttons.
type KeyPayload struct {
	State    int             `json:"state"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// PluginMessage is a request sent by the property inspector.
type PluginMessage struct {
	Event string `json:"event"`
}

// DeviceListPayload answers a getDeviceList request.
type DeviceListPayload struct {
	Event         string   `json:"event"`
	OutputDevices []Device `json:"outputDevices"`
	InputDevices  []Device `json:"inputDevices"`
}
