//go:build linux || darwin

package reactor

import (
	"time"

	"github.com/BenChaimberg/evhttpd/eventloop"
)

// ReadTimeout is how long a connection may remain in the Read state before
// the supervisor closes it (§4.7).
const ReadTimeout = 60 * time.Second

// timeoutSupervisor builds the self-resubmitting command described in
// §4.7: it checks tok's connection once per tick it runs on, and either
// closes the connection, stops (the connection moved on or vanished), or
// reschedules itself.
func timeoutSupervisor(tok eventloop.Token) eventloop.Command {
	return func(view eventloop.SourceView) (eventloop.Response, error) {
		src, ok := view.Get(tok)
		if !ok {
			return nil, nil // connection already closed
		}
		conn, ok := src.(*Connection)
		if !ok {
			return nil, ErrSourceNotConnection
		}
		if conn.state != connStateRead {
			return nil, nil // headers fully received, nothing left to enforce
		}
		if time.Since(conn.acceptedAt) >= ReadTimeout {
			return eventloop.CloseSourceResponse{Token: tok}, nil
		}
		return eventloop.SubmitCommandResponse{Cmd: timeoutSupervisor(tok)}, nil
	}
}
