package reactor

import "errors"

var (
	// ErrSourceNotConnection is returned (logged, dropped) by a command
	// that expected a *Connection at a token but found a different
	// EventSource. A token with no source at all is not an error.
	ErrSourceNotConnection = errors.New("reactor: source at token is not a connection")
)
