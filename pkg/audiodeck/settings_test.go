package audiodeck

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSettingsRoundTrip(t *testing.T) {
	original := ButtonSettings{
		Direction: DirectionOutput,
		Role:      RoleCommunications,
		PrimaryDevice: Device{
			ID:            "dev-a",
			InterfaceName: "USB Audio",
			EndpointName:  "Speakers",
			DisplayName:   "Speakers (USB Audio)",
			Direction:     DirectionOutput,
			State:         StateConnected,
		},
		SecondaryDevice: Device{
			ID:            "dev-b",
			InterfaceName: "Onboard Audio",
			EndpointName:  "Headphones",
			DisplayName:   "Headphones (Onboard Audio)",
			Direction:     DirectionOutput,
			State:         StateConnected,
		},
		MatchStrategy:   MatchFuzzy,
		PrimaryHotkey:   HotkeyConfig{Enabled: true, Ctrl: true, Shift: true, KeyCode: "F5"},
		SecondaryHotkey: HotkeyConfig{Enabled: true, Alt: true, Win: true, KeyCode: "SPACE"},
	}

	blob, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded ButtonSettings
	if err := json.Unmarshal(blob, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", decoded, original)
	}
}

func TestSettingsDecodeWithoutDirectionIsNoop(t *testing.T) {
	settings := ButtonSettings{
		Direction:     DirectionOutput,
		Role:          RoleDefault,
		PrimaryDevice: Device{ID: "keep-me"},
		MatchStrategy: MatchFuzzy,
	}
	before := settings

	if err := json.Unmarshal([]byte(`{"primary":"clobber","matchStrategy":"ID"}`), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(settings, before) {
		t.Errorf("partial blob without direction mutated settings:\ngot  %+v\nwant %+v", settings, before)
	}
}

func TestSettingsDecodeDefaults(t *testing.T) {
	var settings ButtonSettings
	if err := json.Unmarshal([]byte(`{"direction":"output"}`), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if settings.Direction != DirectionOutput {
		t.Errorf("direction = %s, want output", settings.Direction)
	}
	if settings.Role != RoleDefault {
		t.Errorf("role = %s, want default", settings.Role)
	}
	if settings.MatchStrategy != MatchID {
		t.Errorf("matchStrategy = %s, want ID", settings.MatchStrategy)
	}
}

func TestSettingsDecodeDeviceAsString(t *testing.T) {
	var settings ButtonSettings
	blob := `{"direction":"output","primary":"dev-a","secondary":{"id":"dev-b","endpointName":"Headphones"}}`
	if err := json.Unmarshal([]byte(blob), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if settings.PrimaryDevice.ID != "dev-a" {
		t.Errorf("primary id = %q, want dev-a", settings.PrimaryDevice.ID)
	}
	if settings.SecondaryDevice.ID != "dev-b" || settings.SecondaryDevice.EndpointName != "Headphones" {
		t.Errorf("secondary = %+v, want full descriptor", settings.SecondaryDevice)
	}
}

func TestSettingsDecodeLegacyHotkeyAliases(t *testing.T) {
	var settings ButtonSettings
	blob := `{
		"direction": "output",
		"hotkey": {"hotkeyEnabled": true, "hotkeyCtrl": true, "hotkeyWin": true, "hotkeyKey": "A"}
	}`
	if err := json.Unmarshal([]byte(blob), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	hk := settings.PrimaryHotkey
	if !hk.Enabled || !hk.Ctrl || !hk.Win {
		t.Errorf("legacy bool aliases not applied: %+v", hk)
	}
	if hk.KeyCode != "A" {
		t.Errorf("keyCode = %q, want A", hk.KeyCode)
	}
	if hk.Alt || hk.Shift {
		t.Errorf("unset modifiers should stay false: %+v", hk)
	}
}

func TestSettingsDecodeCanonicalBeatsLegacy(t *testing.T) {
	var settings ButtonSettings
	blob := `{
		"direction": "output",
		"primaryHotkey": {"enabled": true, "hotkeyEnabled": false, "keyCode": "B", "hotkeyKey": "A"}
	}`
	if err := json.Unmarshal([]byte(blob), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !settings.PrimaryHotkey.Enabled {
		t.Error("canonical enabled should win over legacy alias")
	}
	if settings.PrimaryHotkey.KeyCode != "B" {
		t.Errorf("keyCode = %q, want canonical B", settings.PrimaryHotkey.KeyCode)
	}
}

func TestSettingsDecodeGarbageFails(t *testing.T) {
	settings := DefaultButtonSettings()
	if err := json.Unmarshal([]byte(`"not an object"`), &settings); err == nil {
		t.Error("expected error for non-object blob")
	}
}

func TestBackfill(t *testing.T) {
	full := Device{
		ID:            "dev-a",
		InterfaceName: "USB Audio",
		EndpointName:  "Speakers",
		DisplayName:   "Speakers (USB Audio)",
		Direction:     DirectionOutput,
		State:         StateConnected,
	}
	provider := &fakeProvider{
		devices: map[Direction][]Device{
			DirectionOutput: {full},
		},
	}

	settings := ButtonSettings{
		Direction:     DirectionOutput,
		PrimaryDevice: Device{ID: "dev-a"},
	}

	if !settings.Backfill(provider) {
		t.Fatal("expected backfill to report a change")
	}
	if !reflect.DeepEqual(settings.PrimaryDevice, full) {
		t.Errorf("primary = %+v, want full live descriptor", settings.PrimaryDevice)
	}

	// second run has nothing to repair
	if settings.Backfill(provider) {
		t.Error("backfill of complete settings should be a no-op")
	}
}

func TestBackfillSkips(t *testing.T) {
	provider := &fakeProvider{
		devices: map[Direction][]Device{
			DirectionOutput: {{ID: "dev-a", DisplayName: "Speakers"}},
		},
	}

	tests := []struct {
		name   string
		device Device
	}{
		{"empty id", Device{}},
		{"name already set", Device{ID: "dev-a", DisplayName: "custom"}},
		{"unknown id", Device{ID: "dev-gone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := ButtonSettings{Direction: DirectionOutput, PrimaryDevice: tt.device}
			if settings.Backfill(provider) {
				t.Errorf("expected no backfill for %+v", tt.device)
			}
		})
	}
}
