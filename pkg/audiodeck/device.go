package audiodeck

// Direction distinguishes capture and playback endpoints.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Role mirrors the OS notion of which "default" slot a device fills.
type Role string

const (
	RoleDefault        Role = "default"
	RoleCommunications Role = "communications"
)

// DeviceState is the connection state of an endpoint as last observed.
type DeviceState string

const (
	StateConnected    DeviceState = "connected"
	StateDisconnected DeviceState = "disconnected"
	StateUnknown      DeviceState = "unknown"
)

// Device is a snapshot of one audio endpoint. The ID is OS-assigned and is
// not stable across reconnects or reboots; InterfaceName and EndpointName
// come from the hardware and survive renumbering.
type Device struct {
	ID            string      `json:"id"`
	InterfaceName string      `json:"interfaceName,omitempty"`
	EndpointName  string      `json:"endpointName,omitempty"`
	DisplayName   string      `json:"displayName,omitempty"`
	Direction     Direction   `json:"direction,omitempty"`
	State         DeviceState `json:"state,omitempty"`
}

// StateOf looks up the connection state of id in a device snapshot. Devices
// the OS no longer reports are treated as disconnected.
func StateOf(id string, devices []Device) DeviceState {
	for _, d := range devices {
		if d.ID == id {
			return d.State
		}
	}
	return StateDisconnected
}
