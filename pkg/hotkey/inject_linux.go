//go:build linux

package hotkey

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

// canonical key name -> X keysym
var keyCodes = map[string]string{
	"SPACE":  "space",
	"ENTER":  "Return",
	"ESCAPE": "Escape",
	"TAB":    "Tab",
}

func init() {
	for c := byte('A'); c <= 'Z'; c++ {
		keyCodes[string(c)] = strings.ToLower(string(c))
	}
	for c := byte('0'); c <= '9'; c++ {
		keyCodes[string(c)] = string(c)
	}
	for n := 1; n <= 24; n++ {
		name := fmt.Sprintf("F%d", n)
		keyCodes[name] = name
	}
}

// sendCombo shells out to xdotool, which presses the modifiers before the
// key and releases them in reverse.
func sendCombo(combo audiodeck.KeyCombo, keysym string) error {
	var parts []string
	if combo.Ctrl {
		parts = append(parts, "ctrl")
	}
	if combo.Alt {
		parts = append(parts, "alt")
	}
	if combo.Shift {
		parts = append(parts, "shift")
	}
	if combo.Meta {
		parts = append(parts, "super")
	}
	parts = append(parts, keysym)

	var stderr bytes.Buffer
	cmd := exec.Command("xdotool", "key", strings.Join(parts, "+"))
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xdotool key: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
