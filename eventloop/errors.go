package eventloop

import (
	"errors"
	"fmt"
)

var (
	// ErrFDOutOfRange is returned by a poller when asked to register a file
	// descriptor outside the range it indexes directly.
	ErrFDOutOfRange = errors.New("eventloop: fd out of range")

	// ErrPollerClosed is returned by poller operations after close.
	ErrPollerClosed = errors.New("eventloop: poller closed")

	// ErrLoopAlreadyRunning is returned by Run when called on a loop that is
	// already executing.
	ErrLoopAlreadyRunning = errors.New("eventloop: loop already running")

	// ErrLoopTerminated is returned by Submit once the loop has finished
	// its run and will not process any more work.
	ErrLoopTerminated = errors.New("eventloop: loop terminated")

	// ErrLoopNotRunning is returned by Shutdown when the loop was never
	// started.
	ErrLoopNotRunning = errors.New("eventloop: loop not running")

	// ErrUnknownToken is logged when a ModifyInterestsResponse references a
	// token with no corresponding EventSource in the registry. A readiness
	// event for such a token is skipped without logging.
	ErrUnknownToken = errors.New("eventloop: unknown token")

	// ErrTokenAlreadyRegistered is returned by NewSourceResponse application
	// when the token is already present in the registry.
	ErrTokenAlreadyRegistered = errors.New("eventloop: token already registered")

	// ErrQueueClosed is returned by the command queue when pushed to after
	// the loop has begun shutting down.
	ErrQueueClosed = errors.New("eventloop: command queue closed")
)

func unsupportedPlatformError(goos string) error {
	return fmt.Errorf("eventloop: reactor poller not supported on %s", goos)
}
