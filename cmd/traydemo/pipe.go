//go:build windows

package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"

	"github.com/Microsoft/go-winio"
)

// pipeCommand is one control message, sent as a single JSON document per
// connection.
type pipeCommand struct {
	Tooltip string `json:"tooltip,omitempty"`
	Quit    bool   `json:"quit,omitempty"`
}

// servePipe accepts control connections on a named pipe so other local
// processes can update the tray.
func servePipe(ctx context.Context, name string, d *demoApp) error {
	pipe, err := winio.ListenPipe(name, nil)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		pipe.Close()
	}()

	slog.Info("control pipe listening", "name", name)
	for {
		conn, err := pipe.Accept()
		if err != nil {
			if err != winio.ErrPipeListenerClosed {
				return err
			}
			return nil
		}
		go d.handleControl(conn)
	}
}

func (d *demoApp) handleControl(conn net.Conn) {
	defer conn.Close()
	var cmd pipeCommand
	if err := json.NewDecoder(conn).Decode(&cmd); err != nil {
		slog.Warn("bad control command", "error", err)
		return
	}
	if cmd.Tooltip != "" {
		if err := d.tray.SetTooltip(cmd.Tooltip); err != nil {
			slog.Warn("failed to update tooltip", "error", err)
		}
	}
	if cmd.Quit {
		slog.Info("quit requested over control pipe")
		d.quit()
	}
}
