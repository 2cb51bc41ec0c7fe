//go:build windows

package eventloop

import "runtime"

// windowsPoller is a stub: the loop's reactor variant is not supported on
// Windows (§6 ships serial and pool variants there instead). newPoller
// exists so the package still builds; init always fails.
type windowsPoller struct{}

func newPoller() poller {
	return &windowsPoller{}
}

func (p *windowsPoller) init() error {
	return unsupportedPlatformError(runtime.GOOS)
}

func (p *windowsPoller) close() error { return nil }

func (p *windowsPoller) register(fd int, token Token, events IOEvents) error {
	return ErrPollerClosed
}

func (p *windowsPoller) reregister(fd int, token Token, events IOEvents) error {
	return ErrPollerClosed
}

func (p *windowsPoller) deregister(fd int) error {
	return ErrPollerClosed
}

func (p *windowsPoller) wait(timeoutMs int, out []ReadyEvent) (int, error) {
	return 0, ErrPollerClosed
}
