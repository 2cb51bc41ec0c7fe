package reactor

import "github.com/BenChaimberg/evhttpd/eventloop"

// Reserved tokens: the listener and control-input sources have fixed
// tokens since there is exactly one of each per loop. Connection tokens
// start above both and are allocated by the listener's own counter (§3:
// "allocated by a monotonically increasing counter held inside the
// listener source").
const (
	ListenerToken     eventloop.Token = 1
	ControlInputToken eventloop.Token = 2
	firstConnToken    eventloop.Token = 3
)
