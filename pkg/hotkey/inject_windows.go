//go:build windows

package hotkey

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard  = 1
	keyeventfKeyup = 0x0002

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkLWin    = 0x5B
)

// canonical key name -> virtual-key code
var keyCodes = map[string]uint16{
	"SPACE":  0x20,
	"ENTER":  0x0D,
	"ESCAPE": 0x1B,
	"TAB":    0x09,
}

func init() {
	// letters and digits map straight to their ASCII value
	for c := byte('A'); c <= 'Z'; c++ {
		keyCodes[string(c)] = uint16(c)
	}
	for c := byte('0'); c <= '9'; c++ {
		keyCodes[string(c)] = uint16(c)
	}
	for n := 0; n < 24; n++ {
		keyCodes[fmt.Sprintf("F%d", n+1)] = uint16(0x70 + n)
	}
}

type keybdInput struct {
	Vk        uint16
	Scan      uint16
	Flags     uint32
	Time      uint32
	ExtraInfo uintptr
}

// input matches the Win32 INPUT struct; the padding keeps it the size of the
// MOUSEINPUT union arm.
type input struct {
	Type uint32
	_    uint32
	Ki   keybdInput
	_    [8]byte
}

func sendCombo(combo audiodeck.KeyCombo, code uint16) error {
	var down []input

	press := func(vk uint16) {
		down = append(down, input{Type: inputKeyboard, Ki: keybdInput{Vk: vk}})
	}

	if combo.Ctrl {
		press(vkControl)
	}
	if combo.Alt {
		press(vkMenu)
	}
	if combo.Shift {
		press(vkShift)
	}
	if combo.Meta {
		press(vkLWin)
	}
	press(code)

	// releases mirror the presses in reverse
	inputs := down
	for i := len(down) - 1; i >= 0; i-- {
		up := down[i]
		up.Ki.Flags = keyeventfKeyup
		inputs = append(inputs, up)
	}

	sent, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(sent) != len(inputs) {
		return fmt.Errorf("SendInput sent %d of %d events: %w", sent, len(inputs), err)
	}

	return nil
}
