//go:build linux || darwin

package reactor

import (
	"fmt"

	"github.com/BenChaimberg/evhttpd/eventloop"
	"github.com/BenChaimberg/evhttpd/vhost"
	"golang.org/x/sys/unix"
)

// Listener is the accept-side EventSource (§3, §4.3): a non-blocking
// listening socket plus the monotonic token counter for connections it
// accepts.
type Listener struct {
	fd        int
	nextToken eventloop.Token
	loop      *eventloop.Loop
	router    *vhost.Router
}

// Listen creates, binds, and listens on a non-blocking IPv4 TCP socket on
// port, and wraps it as a Listener ready for direct registration.
func Listen(loop *eventloop.Loop, port int, router *vhost.Router) (*Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, fmt.Errorf("reactor: socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("reactor: setsockopt SO_REUSEADDR: %w", err)
	}
	addr := &unix.SockaddrInet4{Port: port}
	if err := unix.Bind(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("reactor: bind: %w", err)
	}
	if err := unix.Listen(fd, unix.SOMAXCONN); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("reactor: listen: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("reactor: set nonblocking: %w", err)
	}
	return &Listener{fd: fd, nextToken: firstConnToken, loop: loop, router: router}, nil
}

// FD implements eventloop.EventSource.
func (l *Listener) FD() int { return l.fd }

// HandleReady implements §4.3: accept until EAGAIN, emitting a NewSource +
// SubmitCommand pair per accepted connection, in that order.
func (l *Listener) HandleReady(events eventloop.IOEvents) []eventloop.Command {
	var cmds []eventloop.Command
	for {
		connFD, sa, err := unix.Accept(l.fd)
		if err != nil {
			if err == unix.EAGAIN {
				return cmds
			}
			return append(cmds, errCommand(fmt.Errorf("reactor: accept: %w", err)))
		}
		if err := unix.SetNonblock(connFD, true); err != nil {
			unix.Close(connFD)
			cmds = append(cmds, errCommand(fmt.Errorf("reactor: set nonblocking accepted fd: %w", err)))
			continue
		}

		tok := l.nextToken
		l.nextToken++

		conn := newConnection(connFD, tok, l.loop, l.router, sockaddrString(sa))
		cmds = append(cmds,
			eventloop.Immediate(eventloop.NewSourceResponse{Token: tok, Source: conn, Interest: eventloop.EventRead}),
			eventloop.Immediate(eventloop.SubmitCommandResponse{Cmd: timeoutSupervisor(tok)}),
		)
	}
}

// errCommand turns a handler-level error into a Command so it surfaces
// through the executor's existing log-and-drop path: it is logged as a
// command error, without the listener's token, and the loop continues.
func errCommand(err error) eventloop.Command {
	return func(eventloop.SourceView) (eventloop.Response, error) { return nil, err }
}

func sockaddrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return fmt.Sprintf("%d.%d.%d.%d:%d", a.Addr[0], a.Addr[1], a.Addr[2], a.Addr[3], a.Port)
	case *unix.SockaddrInet6:
		return fmt.Sprintf("[%x]:%d", a.Addr, a.Port)
	default:
		return ""
	}
}
