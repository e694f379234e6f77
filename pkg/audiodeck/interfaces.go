package audiodeck

import "encoding/json"

// DeviceProvider exposes the OS audio subsystem: device enumeration and the
// default-device slots. Enumeration order must be stable between calls; the
// fuzzy resolver takes the first match in provider order.
type DeviceProvider interface {
	Devices(direction Direction) ([]Device, error)
	DefaultDeviceID(direction Direction, role Role) (string, error)
	SetDefaultDeviceID(direction Direction, role Role, id string) error
}

// DefaultChangeFunc is invoked when the OS switches a default device
// out-of-band.
type DefaultChangeFunc func(direction Direction, role Role, deviceID string)

// KeyCombo is a symbolic modifier+key chord.
type KeyCombo struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Key   string
}

// KeyInjector synthesizes a key press on the host OS. Implementations must
// treat unknown key names as a no-op, not an error, so settings written by
// newer versions stay harmless.
type KeyInjector interface {
	Inject(combo KeyCombo) error
}

// Host is the deck application the plugin reports back to.
type Host interface {
	SetState(context string, state int) error
	ShowAlert(context string) error
	SetSettings(context string, settings ButtonSettings) error
	SendToPropertyInspector(action, context string, payload any) error
}

// EventSource delivers host lifecycle events one at a time.
type EventSource interface {
	ReadEvent() (Event, error)
}

// SettingsStore persists raw settings blobs per button context, so buttons
// come back configured after the deck daemon restarts without echoing
// settings. Get returns nil for unknown contexts.
type SettingsStore interface {
	Get(context string) (json.RawMessage, error)
	Set(context string, settings json.RawMessage) error
}
