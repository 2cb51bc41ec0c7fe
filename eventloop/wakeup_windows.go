//go:build windows

package eventloop

const wakeToken Token = 0

// wakeup has no Windows implementation; the reactor variant is unsupported
// there (see poller_windows.go). serial and pool don't use it.
type wakeup struct{}

func newWakeup() (*wakeup, error) {
	return nil, unsupportedPlatformError("windows")
}

func (w *wakeup) readFD() int { return -1 }
func (w *wakeup) wake()       {}
func (w *wakeup) drain()      {}
func (w *wakeup) close()      {}
