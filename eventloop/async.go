package eventloop

import "fmt"

// RunAsync runs fn in a new goroutine, then submits the Command it returns
// back onto the loop via Submit once fn completes. This is how blocking
// work (a CGI subprocess's stdin/stdout I/O, per cgiexec) gets bridged into
// the single-threaded reactor without blocking a tick: grounded on the same
// goroutine + re-entry idea as Promisify, minus the promise bookkeeping
// this server has no use for.
//
// If fn panics, the recovered value is delivered to the loop as a command
// error (logged, dropped) rather than crashing the process.
func (l *Loop) RunAsync(fn func() Command) {
	go func() {
		cmd := l.runAsyncCaptured(fn)
		if cmd == nil {
			return
		}
		if err := l.Submit(cmd); err != nil {
			// Loop is shutting down; nothing left to deliver the result to.
			logErr("RunAsync: submit after shutdown", err)
		}
	}()
}

func (l *Loop) runAsyncCaptured(fn func() Command) (cmd Command) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("eventloop: async task panicked: %v", r)
			cmd = func(SourceView) (Response, error) { return nil, err }
		}
	}()
	return fn()
}
