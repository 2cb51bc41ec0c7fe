//go:build linux || darwin

package reactor

import (
	"bytes"
	"strings"

	"github.com/BenChaimberg/evhttpd/eventloop"
	"github.com/fatih/color"
	"golang.org/x/sys/unix"
)

// ControlInput reads operator commands from standard input (§3, §4.8). The
// only recognized command is "shutdown", which closes the listener so
// acceptance halts while in-flight connections drain.
type ControlInput struct {
	fd            int
	listenerToken eventloop.Token
	pending       []byte
}

// NewControlInput wraps fd (ordinarily 0, stdin) for registration.
func NewControlInput(fd int, listenerToken eventloop.Token) *ControlInput {
	return &ControlInput{fd: fd, listenerToken: listenerToken}
}

// FD implements eventloop.EventSource.
func (c *ControlInput) FD() int { return c.fd }

// HandleReady implements §4.8.
func (c *ControlInput) HandleReady(events eventloop.IOEvents) []eventloop.Command {
	buf := make([]byte, 256)
	var cmds []eventloop.Command
	for {
		n, err := unix.Read(c.fd, buf)
		if err != nil {
			if err == unix.EAGAIN {
				return cmds
			}
			return cmds
		}
		if n == 0 {
			return cmds
		}
		c.pending = append(c.pending, buf[:n]...)
		for {
			idx := bytes.IndexByte(c.pending, '\n')
			if idx < 0 {
				break
			}
			line := string(bytes.TrimRight(c.pending[:idx], "\r"))
			c.pending = c.pending[idx+1:]
			if cmd := c.handleLine(line); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
}

func (c *ControlInput) handleLine(line string) eventloop.Command {
	if strings.TrimSpace(line) == "shutdown" {
		return eventloop.Immediate(eventloop.CloseSourceResponse{Token: c.listenerToken})
	}
	color.Yellow("unrecognized admin command %q; the only recognized command is %q", line, "shutdown")
	return nil
}
