// Package pulse implements the device provider on top of PulseAudio or
// PipeWire via pactl. Sinks are output endpoints, sources input endpoints.
//
// Pulse has a single default per direction and no communications slot, so
// both roles map onto the same default.
package pulse

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

type Provider struct {
	path string
	log  *zap.SugaredLogger
}

// NewProvider creates a Provider running the given pactl binary; empty path
// means "pactl" from $PATH.
func NewProvider(path string, log *zap.SugaredLogger) *Provider {
	if path == "" {
		path = "pactl"
	}
	return &Provider{path: path, log: log.Named("pulse")}
}

func (p *Provider) runCommand(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(p.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pactl %s: %w, stderr: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Devices lists the endpoints of one direction, in pactl order. pactl output
// order is stable for a given server state, which the fuzzy resolver relies
// on.
func (p *Provider) Devices(direction audiodeck.Direction) ([]audiodeck.Device, error) {
	out, err := p.runCommand("--format=json", "list", listNoun(direction))
	if err != nil {
		return nil, err
	}

	devices, err := devicesFromJSON([]byte(out), direction)
	if err != nil {
		return nil, fmt.Errorf("parse %s list: %w", listNoun(direction), err)
	}

	return devices, nil
}

// DefaultDeviceID returns the current default endpoint name for a direction.
// The role is ignored; see the package comment.
func (p *Provider) DefaultDeviceID(direction audiodeck.Direction, _ audiodeck.Role) (string, error) {
	verb := "get-default-sink"
	if direction == audiodeck.DirectionInput {
		verb = "get-default-source"
	}

	return p.runCommand(verb)
}

// SetDefaultDeviceID makes id the default endpoint for a direction.
func (p *Provider) SetDefaultDeviceID(direction audiodeck.Direction, _ audiodeck.Role, id string) error {
	verb := "set-default-sink"
	if direction == audiodeck.DirectionInput {
		verb = "set-default-source"
	}

	_, err := p.runCommand(verb, id)
	return err
}

func listNoun(direction audiodeck.Direction) string {
	if direction == audiodeck.DirectionInput {
		return "sources"
	}
	return "sinks"
}
