package hotkey

import (
	"go.uber.org/zap"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

// Injector implements audiodeck.KeyInjector for the current platform.
type Injector struct {
	log *zap.SugaredLogger
}

func NewInjector(log *zap.SugaredLogger) *Injector {
	return &Injector{log: log.Named("hotkey")}
}

// Inject presses the combo's modifiers in order (ctrl, alt, shift, meta),
// then the key, and releases everything in reverse. Unknown or unmappable
// keys are a no-op.
func (i *Injector) Inject(combo audiodeck.KeyCombo) error {
	key, ok := Lookup(combo.Key)
	if !ok {
		i.log.Debugw("unknown key name, ignoring", "key", combo.Key)
		return nil
	}

	code, ok := keyCodes[key]
	if !ok {
		i.log.Debugw("key has no code on this platform, ignoring", "key", key)
		return nil
	}

	i.log.Debugw("injecting hotkey", "key", key)
	return sendCombo(combo, code)
}
