//go:build linux || darwin

package eventloop

import (
	"os"
	"testing"
)

// pipeFDs returns a pipe's (read, write) raw file descriptors for use in
// poller registration tests. The *os.File wrappers are closed via
// t.Cleanup, so closeFDsQuiet has nothing left to do.
func pipeFDs(t *testing.T) (int, int, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		return 0, 0, err
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})
	return int(r.Fd()), int(w.Fd()), nil
}

func closeFDsQuiet(fds ...int) {
	// no-op: *os.File.Close is registered via t.Cleanup in pipeFDs; this
	// helper exists so call sites read naturally without fd-level dup2.
	_ = fds
}
