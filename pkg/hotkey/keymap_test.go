package hotkey

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"A", "A", true},
		{"a", "A", true},
		{" z ", "Z", true},
		{"7", "7", true},
		{"F1", "F1", true},
		{"f12", "F12", true},
		{"F24", "F24", true},
		{"SPACE", "SPACE", true},
		{"ENTER", "ENTER", true},
		{"RETURN", "ENTER", true},
		{"ESC", "ESCAPE", true},
		{"ESCAPE", "ESCAPE", true},
		{"tab", "TAB", true},

		{"", "", false},
		{"?", "", false},
		{"F0", "", false},
		{"F25", "", false},
		{"F1X", "", false},
		{"MEDIA_PLAY", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Lookup(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Lookup(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLookupCoversPlatformTable(t *testing.T) {
	// every canonical name the platform maps must survive Lookup, otherwise
	// the table entry is dead
	for name := range keyCodes {
		got, ok := Lookup(name)
		if !ok || got != name {
			t.Errorf("platform key %q does not round-trip through Lookup (got %q, %v)", name, got, ok)
		}
	}
}
