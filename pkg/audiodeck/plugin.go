package audiodeck

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// PluginUUID identifies this plugin to the deck daemon.
const PluginUUID = "codeberg.miketth.audiodeck"

// Action IDs, one per button flavor the deck offers.
const (
	SetActionID    = PluginUUID + ".set"
	ToggleActionID = PluginUUID + ".toggle"
)

// Button is one visible button instance, keyed by its host context.
type Button struct {
	Action   string
	Context  string
	Settings ButtonSettings
}

// Plugin owns all visible buttons and decides, per activation, which device
// becomes the default, what the button should look like afterwards, and
// whether a hotkey fires.
//
// One mutex serializes host callbacks against out-of-band default-device
// notifications; nothing here may touch the button map without it.
type Plugin struct {
	mu      sync.Mutex
	buttons map[string]*Button

	provider DeviceProvider
	injector KeyInjector
	host     Host
	store    SettingsStore
	log      *zap.SugaredLogger
}

// New creates a Plugin. store may be nil, in which case buttons only know
// the settings the host sends them.
func New(provider DeviceProvider, injector KeyInjector, host Host, store SettingsStore, log *zap.SugaredLogger) *Plugin {
	return &Plugin{
		buttons:  make(map[string]*Button),
		provider: provider,
		injector: injector,
		host:     host,
		store:    store,
		log:      log.Named("plugin"),
	}
}

// ProcessEvents reads host events until the context is cancelled or the
// source fails. Per-event problems are logged and skipped; a button
// misbehaving must never take the daemon down.
func (p *Plugin) ProcessEvents(ctx context.Context, events EventSource) error {
	for {
		resultCh := make(chan Event)
		errCh := make(chan error)
		go func() {
			ev, err := events.ReadEvent()
			if err != nil {
				errCh <- err
				return
			}
			resultCh <- ev
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-resultCh:
			p.dispatch(ev)
		case err := <-errCh:
			return fmt.Errorf("read event: %w", err)
		}
	}
}

func (p *Plugin) dispatch(ev Event) {
	switch ev.Event {
	case EventKeyUp:
		var payload KeyPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			p.log.Warnw("ignoring malformed key payload", "context", ev.Context, "error", err)
			return
		}
		p.KeyUp(ev.Action, ev.Context, payload.State, payload.Settings)

	case EventWillAppear:
		var payload KeyPayload
		if len(ev.Payload) > 0 {
			if err := json.Unmarshal(ev.Payload, &payload); err != nil {
				p.log.Warnw("ignoring malformed appear payload", "context", ev.Context, "error", err)
				return
			}
		}
		p.WillAppear(ev.Action, ev.Context, payload.Settings)

	case EventWillDisappear:
		p.WillDisappear(ev.Context)

	case EventDidReceiveSettings:
		var payload KeyPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			p.log.Warnw("ignoring malformed settings payload", "context", ev.Context, "error", err)
			return
		}
		p.DidReceiveSettings(ev.Action, ev.Context, payload.Settings)

	case EventSendToPlugin:
		p.sendToPlugin(ev.Action, ev.Context, ev.Payload)

	case EventKeyDown:
		// switching happens on release

	default:
		p.log.Debugw("ignoring event", "event", ev.Event)
	}
}

// WillAppear registers a button. Settings may be absent; the store copy, if
// any, fills in for hosts that do not persist plugin settings themselves.
func (p *Plugin) WillAppear(action, context string, settings json.RawMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	button := &Button{
		Action:   action,
		Context:  context,
		Settings: DefaultButtonSettings(),
	}
	p.buttons[context] = button

	if len(settings) == 0 && p.store != nil {
		stored, err := p.store.Get(context)
		if err != nil {
			p.log.Warnw("read stored settings", "context", context, "error", err)
		} else {
			settings = stored
		}
	}
	p.applySettingsLocked(button, settings)

	p.updateStateLocked(button, "")
	p.backfillLocked(button)
}

// DidReceiveSettings is a full re-registration, matching host semantics: the
// payload carries the complete settings object.
func (p *Plugin) DidReceiveSettings(action, context string, settings json.RawMessage) {
	p.WillAppear(action, context, settings)
}

// WillDisappear forgets a button.
func (p *Plugin) WillDisappear(context string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.buttons, context)
}

// KeyUp is one activation. reportedState is the host's last-known visual
// state for the button.
func (p *Plugin) KeyUp(action, context string, reportedState int, settings json.RawMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	button, ok := p.buttons[context]
	if !ok {
		button = &Button{Action: action, Context: context, Settings: DefaultButtonSettings()}
		p.buttons[context] = button
	}
	p.applySettingsLocked(button, settings)
	p.backfillLocked(button)

	cfg := button.Settings
	live, err := p.provider.Devices(cfg.Direction)
	if err != nil {
		p.log.Errorw("list devices", "direction", cfg.Direction, "error", err)
		p.showAlert(context)
		return
	}

	// This looks inverted, but a toggle button sitting in state 1 should
	// move to state 0, which is the primary device. Set buttons always
	// target the primary.
	usePrimary := reportedState != 0 || action == SetActionID
	slot := cfg.SecondaryDevice
	hotkey := cfg.SecondaryHotkey
	if usePrimary {
		slot = cfg.PrimaryDevice
		hotkey = cfg.PrimaryHotkey
	}

	deviceID := VolatileID(slot, cfg.MatchStrategy, live)
	if deviceID == "" {
		p.log.Debugw("no device configured for slot, doing nothing", "context", context)
		return
	}

	if StateOf(deviceID, live) != StateConnected {
		p.log.Infow("target device not connected", "context", context, "device", deviceID)
		if action == SetActionID {
			p.setState(context, 1)
		}
		p.showAlert(context)
		return
	}

	if action == SetActionID {
		current, err := p.provider.DefaultDeviceID(cfg.Direction, cfg.Role)
		if err != nil {
			p.log.Errorw("get default device", "direction", cfg.Direction, "role", cfg.Role, "error", err)
		} else if deviceID == current {
			// already the default; undo the host's automatic state flip
			// and skip the hotkey
			p.log.Debugw("device already default, nothing to do", "context", context)
			p.setState(context, reportedState)
			return
		}
	}

	p.log.Infow("switching default device",
		"context", context,
		"direction", cfg.Direction,
		"role", cfg.Role,
		"device", deviceID,
	)
	if err := p.provider.SetDefaultDeviceID(cfg.Direction, cfg.Role, deviceID); err != nil {
		p.log.Errorw("set default device", "device", deviceID, "error", err)
		p.showAlert(context)
		return
	}

	if hotkey.Enabled && hotkey.KeyCode != "" {
		if err := p.injector.Inject(hotkey.Combo()); err != nil {
			// the switch already happened; a failed hotkey is not a
			// failed activation
			p.log.Warnw("inject hotkey", "key", hotkey.KeyCode, "error", err)
		}
	}

	p.updateStateLocked(button, deviceID)
}

// OnDefaultDeviceChanged refreshes every button watching the changed slot.
// The provider subscription calls this from its own goroutine.
func (p *Plugin) OnDefaultDeviceChanged(direction Direction, role Role, deviceID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, button := range p.buttons {
		if button.Settings.Direction != direction {
			continue
		}
		if button.Settings.Role != role {
			continue
		}
		p.updateStateLocked(button, deviceID)
	}
}

// updateStateLocked reconciles one button's visual state with the actual
// default device. activeDevice may be empty, in which case the provider is
// asked. Volatile IDs are recomputed here, never cached.
func (p *Plugin) updateStateLocked(button *Button, activeDevice string) {
	cfg := button.Settings

	if activeDevice == "" {
		current, err := p.provider.DefaultDeviceID(cfg.Direction, cfg.Role)
		if err != nil {
			p.log.Errorw("get default device", "direction", cfg.Direction, "role", cfg.Role, "error", err)
			return
		}
		activeDevice = current
	}
	if activeDevice == "" {
		// nothing to compare against; an empty default would false-match
		// an unconfigured slot
		return
	}

	live, err := p.provider.Devices(cfg.Direction)
	if err != nil {
		p.log.Errorw("list devices", "direction", cfg.Direction, "error", err)
		return
	}

	primaryID := cfg.VolatilePrimaryID(live)
	secondaryID := cfg.VolatileSecondaryID(live)

	if button.Action == SetActionID {
		state := 1
		if activeDevice == primaryID {
			state = 0
		}
		p.setState(button.Context, state)
		return
	}

	switch activeDevice {
	case primaryID:
		p.setState(button.Context, 0)
	case secondaryID:
		p.setState(button.Context, 1)
	default:
		// neither configured device is active
		p.showAlert(button.Context)
	}
}

func (p *Plugin) applySettingsLocked(button *Button, settings json.RawMessage) {
	if len(settings) == 0 {
		return
	}

	if err := json.Unmarshal(settings, &button.Settings); err != nil {
		p.log.Warnw("ignoring malformed settings", "context", button.Context, "error", err)
		return
	}

	if p.store != nil {
		if err := p.store.Set(button.Context, settings); err != nil {
			p.log.Warnw("store settings", "context", button.Context, "error", err)
		}
	}
}

// backfillLocked repairs name-less device slots from the live list and, when
// anything changed, pushes the repaired settings back to the host, which is
// the source of truth for the persisted copy.
func (p *Plugin) backfillLocked(button *Button) {
	if !button.Settings.Backfill(p.provider) {
		return
	}

	p.log.Debugw("backfilled device names", "context", button.Context)
	if err := p.host.SetSettings(button.Context, button.Settings); err != nil {
		p.log.Warnw("push backfilled settings", "context", button.Context, "error", err)
	}

	if p.store != nil {
		blob, err := json.Marshal(button.Settings)
		if err == nil {
			if err := p.store.Set(button.Context, blob); err != nil {
				p.log.Warnw("store backfilled settings", "context", button.Context, "error", err)
			}
		}
	}
}

func (p *Plugin) sendToPlugin(action, context string, payload json.RawMessage) {
	var msg PluginMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		p.log.Warnw("ignoring malformed plugin message", "context", context, "error", err)
		return
	}

	switch msg.Event {
	case "getDeviceList":
		outputs, err := p.provider.Devices(DirectionOutput)
		if err != nil {
			p.log.Errorw("list output devices", "error", err)
		}
		inputs, err := p.provider.Devices(DirectionInput)
		if err != nil {
			p.log.Errorw("list input devices", "error", err)
		}

		reply := DeviceListPayload{
			Event:         msg.Event,
			OutputDevices: outputs,
			InputDevices:  inputs,
		}
		if err := p.host.SendToPropertyInspector(action, context, reply); err != nil {
			p.log.Warnw("reply to property inspector", "context", context, "error", err)
		}

	default:
		p.log.Debugw("ignoring plugin message", "event", msg.Event)
	}
}

func (p *Plugin) setState(context string, state int) {
	if err := p.host.SetState(context, state); err != nil {
		p.log.Warnw("set state", "context", context, "error", err)
	}
}

func (p *Plugin) showAlert(context string) {
	if err := p.host.ShowAlert(context); err != nil {
		p.log.Warnw("show alert", "context", context, "error", err)
	}
}
