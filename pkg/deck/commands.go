package deck

import "codeberg.org/miketth/audiodeck/pkg/audiodeck"

type command struct {
	Event   string `json:"event"`
	Action  string `json:"action,omitempty"`
	Context string `json:"context,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type registerPayload struct {
	UUID string `json:"uuid"`
}

type statePayload struct {
	State int `json:"state"`
}

// SetState reports a button's visual state (0 or 1) back to the daemon.
func (c *Client) SetState(context string, state int) error {
	return c.send(command{
		Event:   "setState",
		Context: context,
		Payload: statePayload{State: state},
	})
}

// ShowAlert flashes the warning overlay on one button.
func (c *Client) ShowAlert(context string) error {
	return c.send(command{
		Event:   "showAlert",
		Context: context,
	})
}

// SetSettings replaces the persisted settings of one button. The daemon owns
// the persisted copy; it echoes the new settings back as a
// didReceiveSettings event.
func (c *Client) SetSettings(context string, settings audiodeck.ButtonSettings) error {
	return c.send(command{
		Event:   "setSettings",
		Context: context,
		Payload: settings,
	})
}

// SendToPropertyInspector forwards a payload to the button's configuration
// UI.
func (c *Client) SendToPropertyInspector(action, context string, payload any) error {
	return c.send(command{
		Event:   "sendToPropertyInspector",
		Action:  action,
		Context: context,
		Payload: payload,
	})
}
