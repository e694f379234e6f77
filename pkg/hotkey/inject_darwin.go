//go:build darwin

package hotkey

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

// canonical key name -> macOS virtual key code (Carbon kVK_* values; not
// contiguous, so the whole table is spelled out). F21-F24 do not exist on
// macOS and are dropped by the table miss in Inject.
var keyCodes = map[string]int{
	"A": 0x00, "B": 0x0B, "C": 0x08, "D": 0x02, "E": 0x0E, "F": 0x03,
	"G": 0x05, "H": 0x04, "I": 0x22, "J": 0x26, "K": 0x28, "L": 0x25,
	"M": 0x2E, "N": 0x2D, "O": 0x1F, "P": 0x23, "Q": 0x0C, "R": 0x0F,
	"S": 0x01, "T": 0x11, "U": 0x20, "V": 0x09, "W": 0x0D, "X": 0x07,
	"Y": 0x10, "Z": 0x06,

	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,

	"F1": 0x7A, "F2": 0x78, "F3": 0x63, "F4": 0x76, "F5": 0x60,
	"F6": 0x61, "F7": 0x62, "F8": 0x64, "F9": 0x65, "F10": 0x6D,
	"F11": 0x67, "F12": 0x6F, "F13": 0x69, "F14": 0x6B, "F15": 0x71,
	"F16": 0x6A, "F17": 0x40, "F18": 0x4F, "F19": 0x50, "F20": 0x5A,

	"SPACE":  0x31,
	"ENTER":  0x24,
	"ESCAPE": 0x35,
	"TAB":    0x30,
}

// sendCombo drives System Events, which handles press order and reverse
// release itself.
func sendCombo(combo audiodeck.KeyCombo, code int) error {
	var mods []string
	if combo.Ctrl {
		mods = append(mods, "control down")
	}
	if combo.Alt {
		mods = append(mods, "option down")
	}
	if combo.Shift {
		mods = append(mods, "shift down")
	}
	if combo.Meta {
		mods = append(mods, "command down")
	}

	script := fmt.Sprintf("tell application %q to key code %d", "System Events", code)
	if len(mods) > 0 {
		script += fmt.Sprintf(" using {%s}", strings.Join(mods, ", "))
	}

	var stderr bytes.Buffer
	cmd := exec.Command("osascript", "-e", script)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("osascript: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}
