// Package hotkey synthesizes keyboard shortcuts after a device switch.
// Symbolic key names are normalized by a pure lookup table, then translated
// to platform codes by per-platform tables; names the platform cannot map
// are silently dropped so settings written by newer versions stay harmless.
package hotkey

import (
	"strconv"
	"strings"
)

// Lookup normalizes a symbolic key name to its canonical spelling: single
// letters and digits upper-cased, "F1".."F24", or one of the named keys.
// Reports false for names this version does not know.
func Lookup(name string) (string, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))

	switch {
	case name == "":
		return "", false

	case len(name) == 1:
		c := name[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return name, true
		}
		return "", false

	case name[0] == 'F' && len(name) <= 3:
		n, err := strconv.Atoi(name[1:])
		if err != nil || n < 1 || n > 24 {
			return "", false
		}
		return "F" + strconv.Itoa(n), true
	}

	switch name {
	case "SPACE":
		return "SPACE", true
	case "ENTER", "RETURN":
		return "ENTER", true
	case "ESCAPE", "ESC":
		return "ESCAPE", true
	case "TAB":
		return "TAB", true
	}

	return "", false
}
