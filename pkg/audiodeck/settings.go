package audiodeck

import (
	"encoding/json"
	"fmt"
)

// MatchStrategy controls how a configured device is mapped to a live ID.
type MatchStrategy string

const (
	MatchID    MatchStrategy = "ID"
	MatchFuzzy MatchStrategy = "Fuzzy"
)

// HotkeyConfig is a keyboard shortcut fired after a device switch.
type HotkeyConfig struct {
	Enabled bool   `json:"enabled"`
	Ctrl    bool   `json:"ctrl"`
	Alt     bool   `json:"alt"`
	Shift   bool   `json:"shift"`
	Win     bool   `json:"win"`
	KeyCode string `json:"keyCode"`
}

// Combo converts the persisted form into the injector's chord type.
func (hk HotkeyConfig) Combo() KeyCombo {
	return KeyCombo{
		Ctrl:  hk.Ctrl,
		Alt:   hk.Alt,
		Shift: hk.Shift,
		Meta:  hk.Win,
		Key:   hk.KeyCode,
	}
}

// ButtonSettings is the persisted configuration of one deck button.
type ButtonSettings struct {
	Direction       Direction     `json:"direction"`
	Role            Role          `json:"role"`
	PrimaryDevice   Device        `json:"primary"`
	SecondaryDevice Device        `json:"secondary"`
	MatchStrategy   MatchStrategy `json:"matchStrategy"`
	PrimaryHotkey   HotkeyConfig  `json:"primaryHotkey"`
	SecondaryHotkey HotkeyConfig  `json:"secondaryHotkey"`
}

// DefaultButtonSettings returns the settings a freshly dropped button gets.
func DefaultButtonSettings() ButtonSettings {
	return ButtonSettings{
		Direction:     DirectionInput,
		Role:          RoleDefault,
		MatchStrategy: MatchID,
	}
}

// UnmarshalJSON decodes a settings blob tolerantly: absent fields keep their
// current value, and a blob without a direction leaves the receiver entirely
// untouched so partial blobs from old versions never clobber a configured
// button. Field lookups are by explicit presence check, canonical name first,
// then the pre-1.0 alias.
func (bs *ButtonSettings) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("unmarshal settings object: %w", err)
	}

	direction, ok := fields["direction"]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(direction, &bs.Direction); err != nil {
		return fmt.Errorf("unmarshal direction: %w", err)
	}
	if bs.Role == "" {
		bs.Role = RoleDefault
	}
	if bs.MatchStrategy == "" {
		bs.MatchStrategy = MatchID
	}

	if raw, ok := fields["role"]; ok {
		if err := json.Unmarshal(raw, &bs.Role); err != nil {
			return fmt.Errorf("unmarshal role: %w", err)
		}
	}

	if raw, ok := fields["primary"]; ok {
		if err := unmarshalDevice(raw, &bs.PrimaryDevice); err != nil {
			return fmt.Errorf("unmarshal primary device: %w", err)
		}
	}
	if raw, ok := fields["secondary"]; ok {
		if err := unmarshalDevice(raw, &bs.SecondaryDevice); err != nil {
			return fmt.Errorf("unmarshal secondary device: %w", err)
		}
	}

	if raw, ok := fields["matchStrategy"]; ok {
		if err := json.Unmarshal(raw, &bs.MatchStrategy); err != nil {
			return fmt.Errorf("unmarshal match strategy: %w", err)
		}
	}

	if raw, ok := fields["primaryHotkey"]; ok {
		if err := unmarshalHotkey(raw, &bs.PrimaryHotkey); err != nil {
			return fmt.Errorf("unmarshal primary hotkey: %w", err)
		}
	} else if raw, ok := fields["hotkey"]; ok {
		if err := unmarshalHotkey(raw, &bs.PrimaryHotkey); err != nil {
			return fmt.Errorf("unmarshal legacy hotkey: %w", err)
		}
	}

	if raw, ok := fields["secondaryHotkey"]; ok {
		if err := unmarshalHotkey(raw, &bs.SecondaryHotkey); err != nil {
			return fmt.Errorf("unmarshal secondary hotkey: %w", err)
		}
	}

	return nil
}

// A device slot is either a bare ID string (pre-fuzzy-match settings) or a
// full descriptor.
func unmarshalDevice(raw json.RawMessage, dst *Device) error {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		*dst = Device{ID: id}
		return nil
	}

	return json.Unmarshal(raw, dst)
}

// Hotkey fields had "hotkey"-prefixed names before they moved into their own
// object; both spellings must decode.
func unmarshalHotkey(raw json.RawMessage, dst *HotkeyConfig) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("unmarshal hotkey object: %w", err)
	}

	bools := []struct {
		canonical string
		legacy    string
		dst       *bool
	}{
		{"enabled", "hotkeyEnabled", &dst.Enabled},
		{"ctrl", "hotkeyCtrl", &dst.Ctrl},
		{"alt", "hotkeyAlt", &dst.Alt},
		{"shift", "hotkeyShift", &dst.Shift},
		{"win", "hotkeyWin", &dst.Win},
	}
	for _, f := range bools {
		raw, ok := fields[f.canonical]
		if !ok {
			raw, ok = fields[f.legacy]
		}
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return fmt.Errorf("unmarshal hotkey field %q: %w", f.canonical, err)
		}
	}

	raw, ok := fields["keyCode"]
	if !ok {
		raw, ok = fields["hotkeyKey"]
	}
	if ok {
		if err := json.Unmarshal(raw, &dst.KeyCode); err != nil {
			return fmt.Errorf("unmarshal hotkey key code: %w", err)
		}
	}

	return nil
}

// Backfill repairs device slots that carry an ID but no display name, by
// looking the ID up in the live device list. Reports whether anything
// changed; a true return means the repaired settings should be pushed back to
// the host, which owns the persisted copy.
func (bs *ButtonSettings) Backfill(provider DeviceProvider) bool {
	primary := backfillDevice(&bs.PrimaryDevice, bs.Direction, provider)
	secondary := backfillDevice(&bs.SecondaryDevice, bs.Direction, provider)
	return primary || secondary
}

func backfillDevice(device *Device, fallback Direction, provider DeviceProvider) bool {
	if device.ID == "" {
		return false
	}
	if device.DisplayName != "" {
		return false
	}

	direction := device.Direction
	if direction == "" {
		direction = fallback
	}

	devices, err := provider.Devices(direction)
	if err != nil {
		return false
	}

	for _, live := range devices {
		if live.ID == device.ID {
			*device = live
			return true
		}
	}

	return false
}
