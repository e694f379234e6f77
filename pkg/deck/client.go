// Package deck talks to the deck daemon over its plugin socket. Events and
// commands are single-line JSON objects; the daemon serializes callbacks per
// plugin, so one reader goroutine is enough.
package deck

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"

	"codeberg.org/miketth/audiodeck/pkg/audiodeck"
)

var ErrNotRunning = errors.New("deck daemon might not be running")

type Client struct {
	conn   net.Conn
	reader *bufio.Reader

	writeMu sync.Mutex
}

// Connect dials the deck daemon. An empty socketPath falls back to
// $DECKD_SOCKET, then to the daemon's default under the runtime dir.
func Connect(socketPath string) (*Client, error) {
	if socketPath == "" {
		var err error
		socketPath, err = defaultSocketPath()
		if err != nil {
			return nil, fmt.Errorf("get socket path: %w", err)
		}
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", socketPath, err)
	}

	c := &Client{conn: conn, reader: bufio.NewReader(conn)}

	if err := c.send(command{Event: "registerPlugin", Payload: registerPayload{UUID: audiodeck.PluginUUID}}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("register plugin: %w", err)
	}

	return c, nil
}

func defaultSocketPath() (string, error) {
	if path := os.Getenv("DECKD_SOCKET"); path != "" {
		return path, nil
	}

	if xdg.RuntimeDir == "" {
		return "", fmt.Errorf("DECKD_SOCKET and XDG_RUNTIME_DIR are not set, %w", ErrNotRunning)
	}

	return filepath.Join(xdg.RuntimeDir, "deckd", "plugin.sock"), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// ReadEvent blocks for the next host callback.
func (c *Client) ReadEvent() (audiodeck.Event, error) {
	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		return audiodeck.Event{}, fmt.Errorf("read from deck socket: %w", err)
	}

	var ev audiodeck.Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return audiodeck.Event{}, fmt.Errorf("unmarshal event %q: %w", line, err)
	}

	return ev, nil
}

func (c *Client) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}
	data = append(data, '\n')

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("write to deck socket: %w", err)
	}

	return nil
}
