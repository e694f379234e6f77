package pulse

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

// Subscribe watches the pulse server for out-of-band default changes and
// calls fn for each direction whose default moved. pactl only reports "the
// server changed", so the defaults are polled on every such event and
// deduplicated here. Blocks until ctx is cancelled or pactl dies.
func (p *Provider) Subscribe(ctx context.Context, fn audiodeck.DefaultChangeFunc) error {
	cmd := exec.CommandContext(ctx, p.path, "subscribe")

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open pactl pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start pactl subscribe: %w", err)
	}

	last := map[audiodeck.Direction]string{
		audiodeck.DirectionOutput: p.currentDefault(audiodeck.DirectionOutput),
		audiodeck.DirectionInput:  p.currentDefault(audiodeck.DirectionInput),
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()

		// default switches show up as a change event on the server object
		if !strings.Contains(line, "'change' on server") {
			continue
		}

		for _, direction := range []audiodeck.Direction{audiodeck.DirectionOutput, audiodeck.DirectionInput} {
			id := p.currentDefault(direction)
			if id == "" || id == last[direction] {
				continue
			}
			last[direction] = id

			p.log.Debugw("default device changed", "direction", direction, "device", id)
			fn(direction, audiodeck.RoleDefault, id)
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("pactl subscribe: %w", err)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read pactl subscribe output: %w", err)
	}

	return ctx.Err()
}

func (p *Provider) currentDefault(direction audiodeck.Direction) string {
	id, err := p.DefaultDeviceID(direction, audiodeck.RoleDefault)
	if err != nil {
		p.log.Warnw("get default device", "direction", direction, "error", err)
		return ""
	}
	return id
}
