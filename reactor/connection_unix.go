//go:build linux || darwin

package reactor

import (
	"context"
	"time"

	"github.com/BenChaimberg/evhttpd/cgiexec"
	"github.com/BenChaimberg/evhttpd/eventloop"
	"github.com/BenChaimberg/evhttpd/httpwire"
	"github.com/BenChaimberg/evhttpd/vhost"
	"golang.org/x/sys/unix"
)

type connState int

const (
	connStateRead connState = iota
	connStateWrite
	connStateClosed
)

const readBufSize = 4096

// Connection is one accepted client socket (§3, §4.4, §4.5).
type Connection struct {
	fd         int
	token      eventloop.Token
	loop       *eventloop.Loop
	router     *vhost.Router
	state      connState
	req        httpwire.IncrementalRequest
	resp       httpwire.IncrementalResponse
	acceptedAt time.Time
}

func newConnection(fd int, tok eventloop.Token, loop *eventloop.Loop, router *vhost.Router, remoteAddr string) *Connection {
	return &Connection{
		fd:         fd,
		token:      tok,
		loop:       loop,
		router:     router,
		state:      connStateRead,
		req:        httpwire.NewIncrementalRequest(remoteAddr),
		acceptedAt: time.Now(),
	}
}

// FD implements eventloop.EventSource.
func (c *Connection) FD() int { return c.fd }

// HandleReady implements eventloop.EventSource, dispatching on the
// connection's current state (§4.4, §4.5). Close is terminal: once
// reached, readiness events are ignored until the executor deregisters the
// fd.
func (c *Connection) HandleReady(events eventloop.IOEvents) []eventloop.Command {
	switch c.state {
	case connStateRead:
		return c.handleReadReady()
	case connStateWrite:
		return c.handleWriteReady()
	default:
		return nil
	}
}

// handleReadReady implements §4.4: pull bytes non-blockingly, feed the
// parser, loop until would-block, end-of-stream, or Complete.
func (c *Connection) handleReadReady() []eventloop.Command {
	buf := make([]byte, readBufSize)
	for {
		n, err := unix.Read(c.fd, buf)
		if err != nil {
			if err == unix.EAGAIN {
				return nil
			}
			return c.closeCmd()
		}
		if n == 0 {
			// end-of-stream: a request that never completed is abandoned.
			if c.req.Kind != httpwire.StateComplete {
				return c.closeCmd()
			}
			break
		}

		next, err := httpwire.Feed(c.req, buf[:n])
		if err != nil {
			return c.closeCmd()
		}
		c.req = next
		if c.req.Kind == httpwire.StateComplete {
			break
		}
	}
	return c.dispatchComplete()
}

// dispatchComplete implements §4.4 step 5: route the completed request and
// either move straight to the Write state, or — for a CGI dispatch — spawn
// the subprocess asynchronously and move to Write once it reports back.
func (c *Connection) dispatchComplete() []eventloop.Command {
	decision := c.router.Route(c.req.Request)

	if decision.CGI != nil {
		c.spawnCGI(*decision.CGI)
		return nil // interest stays READABLE; harmless, nothing more arrives
	}

	c.resp = httpwire.NewIncrementalResponse(decision.Response)
	c.state = connStateWrite
	return []eventloop.Command{
		eventloop.Immediate(eventloop.ModifyInterestsResponse{Token: c.token, Interest: eventloop.EventWrite}),
	}
}

// spawnCGI bridges the blocking CGI subprocess call into the loop via
// RunAsync (§4.10), delivering the finalized response back through a
// command that looks the connection up by token — it may have been closed
// in the meantime, in which case the result is simply discarded.
func (c *Connection) spawnCGI(req cgiexec.Request) {
	tok := c.token
	router := c.router
	c.loop.RunAsync(func() eventloop.Command {
		resp, cgiErr := cgiexec.Execute(context.Background(), req)
		final := router.Finalize(resp)
		return func(view eventloop.SourceView) (eventloop.Response, error) {
			src, ok := view.Get(tok)
			if !ok {
				return nil, nil // connection closed before CGI finished
			}
			conn, ok := src.(*Connection)
			if !ok {
				return nil, ErrSourceNotConnection
			}
			conn.resp = httpwire.NewIncrementalResponse(final)
			conn.state = connStateWrite
			if cgiErr != nil {
				logErr("cgi execution failed", cgiErr)
			}
			return eventloop.ModifyInterestsResponse{Token: tok, Interest: eventloop.EventWrite}, nil
		}
	})
}

// handleWriteReady implements §4.5.
func (c *Connection) handleWriteReady() []eventloop.Command {
	if c.resp.Kind == httpwire.ResponsePending {
		c.resp = c.resp.Serialize()
	}
	for c.resp.Kind == httpwire.ResponseSerialized {
		n, err := unix.Write(c.fd, c.resp.Remaining)
		if err != nil {
			if err == unix.EAGAIN {
				return nil
			}
			return c.closeCmd()
		}
		if n == 0 {
			c.resp = httpwire.IncrementalResponse{Kind: httpwire.ResponseDone}
			break
		}
		c.resp = c.resp.Advance(n)
	}
	if c.resp.Kind != httpwire.ResponseDone {
		return nil
	}
	c.state = connStateClosed
	return c.closeCmd()
}

func (c *Connection) closeCmd() []eventloop.Command {
	c.state = connStateClosed
	return []eventloop.Command{
		eventloop.Immediate(eventloop.CloseSourceResponse{Token: c.token}),
	}
}
