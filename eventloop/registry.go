package eventloop

// EventSource is anything the loop can dispatch a readiness event to. The
// three concrete variants used by this server (listener, connection, control
// input) live in package reactor; eventloop only needs the contract.
type EventSource interface {
	// FD returns the file descriptor registered with the poller.
	FD() int
	// HandleReady is invoked when the poller reports readiness. It returns
	// zero or more Commands to run against the registry; a Listener may
	// return many (one NewSource + one SubmitCommand per accepted
	// connection), most other sources return at most one.
	HandleReady(events IOEvents) []Command
}

// registry is the single-writer map from Token to EventSource. Every method
// is called exclusively from the loop goroutine as part of command
// execution; nothing else may read or write it.
type registry struct {
	sources map[Token]EventSource
}

func newRegistry() *registry {
	return &registry{sources: make(map[Token]EventSource)}
}

func (r *registry) insert(tok Token, src EventSource) bool {
	if _, exists := r.sources[tok]; exists {
		return false
	}
	r.sources[tok] = src
	return true
}

func (r *registry) get(tok Token) (EventSource, bool) {
	src, ok := r.sources[tok]
	return src, ok
}

func (r *registry) remove(tok Token) {
	delete(r.sources, tok)
}

func (r *registry) len() int {
	return len(r.sources)
}

// SourceView is the read-only window into the registry passed to every
// Command. It lets a command (e.g. the timeout supervisor) inspect a
// source's current state without being able to mutate the map directly —
// mutation only ever happens through the Response a command returns.
type SourceView interface {
	Get(tok Token) (EventSource, bool)
}

type loopView struct{ l *Loop }

func (v loopView) Get(tok Token) (EventSource, bool) { return v.l.registry.get(tok) }
