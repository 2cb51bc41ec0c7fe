//go:build windows

package reactor

import (
	"fmt"

	"github.com/BenChaimberg/evhttpd/config"
	"github.com/BenChaimberg/evhttpd/eventloop"
)

// Bootstrap is unavailable on windows: the reactor variant depends on the
// raw-socket, non-blocking accept/read/write syscalls eventloop's poller
// also lacks a windows implementation for. Use the serial or pool variants
// instead (§6).
func Bootstrap(loop *eventloop.Loop, cfg *config.ServerConfig) error {
	return fmt.Errorf("reactor: readiness-multiplexed variant not supported on windows")
}
