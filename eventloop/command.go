package eventloop

// Command is a closure submitted to the loop that yields zero or one
// mutation Response when executed against a SourceView. Commands are
// ownership-transferring: whatever state a command closes over belongs to
// the executor once submitted.
type Command func(view SourceView) (Response, error)

// Response is the result of running a Command: a request to mutate the
// registry in one specific way. The zero value of any concrete Response
// type below is meaningful on its own; Response itself carries only an
// unexported marker method because dispatch is done with a type switch in
// Loop.apply.
type Response interface {
	isResponse()
}

// NewSourceResponse registers src under tok for the given interest set.
// Fails (logged, dropped) if tok is already present.
type NewSourceResponse struct {
	Token    Token
	Source   EventSource
	Interest IOEvents
}

// ModifyInterestsResponse changes the readiness events tok's source is
// polled for. Absent token: logged, dropped (not an error).
type ModifyInterestsResponse struct {
	Token    Token
	Interest IOEvents
}

// CloseSourceResponse removes tok from the registry and deregisters its fd.
// Idempotent: closing an already-absent token is a silent no-op.
type CloseSourceResponse struct {
	Token Token
}

// SubmitCommandResponse re-enqueues Cmd for execution on a later tick. Used
// by the timeout supervisor (and any other self-resubmitting command) to
// reschedule itself without being run again in the same tick it was
// produced.
type SubmitCommandResponse struct {
	Cmd Command
}

func (NewSourceResponse) isResponse()       {}
func (ModifyInterestsResponse) isResponse() {}
func (CloseSourceResponse) isResponse()     {}
func (SubmitCommandResponse) isResponse()   {}

// Immediate wraps a pre-packaged Response as a Command, for handlers that
// don't need to inspect the SourceView to decide what to do.
func Immediate(r Response) Command {
	return func(SourceView) (Response, error) { return r, nil }
}
