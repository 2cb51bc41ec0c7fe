//go:build linux || darwin

package eventloop

import "golang.org/x/sys/unix"

// wakeToken is the reserved token of the self-pipe's read end. Listener
// token counters (§3) must start at 1 to avoid colliding with it.
const wakeToken Token = 0

// wakeup is a self-pipe used to interrupt a blocked poller.wait call when a
// command is submitted from outside the loop goroutine (e.g. the bootstrap
// shutting the loop down, or a CGI executor goroutine reporting completion).
type wakeup struct {
	r, w int
}

func newWakeup() (*wakeup, error) {
	var fds [2]int
	if err := unix.Pipe(fds[:]); err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(fds[0], true); err != nil {
		unix.Close(fds[0])
		unix.Close(fds[1])
		return nil, err
	}
	if err := unix.SetNonblock(fds[1], true); err != nil {
		unix.Close(fds[0])
		unix.Close(fds[1])
		return nil, err
	}
	return &wakeup{r: fds[0], w: fds[1]}, nil
}

func (w *wakeup) readFD() int { return w.r }

// wake is safe to call from any goroutine, any number of times; the loop
// only needs to observe at least one byte to know it should re-check the
// command queue.
func (w *wakeup) wake() {
	var b [1]byte
	_, _ = unix.Write(w.w, b[:])
}

// drain empties the pipe after a readiness notification. Called only from
// the loop goroutine.
func (w *wakeup) drain() {
	var buf [64]byte
	for {
		n, err := unix.Read(w.r, buf[:])
		if n <= 0 || err != nil {
			return
		}
	}
}

func (w *wakeup) close() {
	unix.Close(w.r)
	unix.Close(w.w)
}
