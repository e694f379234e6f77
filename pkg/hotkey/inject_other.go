//go:build !windows && !linux && !darwin

package hotkey

import "codeberg.org/miketth/audiodeck/pkg/audiodeck"

// no injection backend; the empty table makes every key a no-op
var keyCodes = map[string]int{}

func sendCombo(audiodeck.KeyCombo, int) error {
	return nil
}
