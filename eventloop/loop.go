package eventloop

// Loop is the single-threaded, readiness-multiplexed reactor. It owns a
// poller, a token-addressed registry of EventSources, and the receive end
// of a command queue whose send end is safe to use from other goroutines.
type Loop struct {
	poller   poller
	registry *registry
	queue    *commandQueue
	state    *fastState
	wake     *wakeup
	timeout  int
	readyBuf []ReadyEvent
}

// New constructs a Loop but does not start it; call Run to begin polling.
func New(opts ...Option) (*Loop, error) {
	cfg := defaultLoopConfig()
	for _, o := range opts {
		o(&cfg)
	}
	w, err := newWakeup()
	if err != nil {
		return nil, err
	}
	p := newPoller()
	if err := p.init(); err != nil {
		w.close()
		return nil, err
	}
	if err := p.register(w.readFD(), wakeToken, EventRead); err != nil {
		p.close()
		w.close()
		return nil, err
	}
	return &Loop{
		poller:   p,
		registry: newRegistry(),
		queue:    newCommandQueue(),
		state:    newFastState(),
		wake:     w,
		timeout:  cfg.pollTimeoutMs,
		readyBuf: make([]ReadyEvent, 256),
	}, nil
}

// Submit enqueues cmd for execution on a future tick. Safe to call from any
// goroutine, including ones outside the loop (a CGI executor goroutine
// reporting completion, or an admin interface requesting shutdown).
func (l *Loop) Submit(cmd Command) error {
	if l.state.IsTerminal() {
		return ErrLoopTerminated
	}
	if err := l.queue.push(cmd); err != nil {
		return err
	}
	l.wake.wake()
	return nil
}

// RegisterDirect installs src under tok without going through the command
// queue. Only safe before Run is called (e.g. installing the listener).
// Everything after startup must go through Submit / a NewSourceResponse.
func (l *Loop) RegisterDirect(tok Token, src EventSource, interest IOEvents) error {
	if err := l.poller.register(src.FD(), tok, interest); err != nil {
		return err
	}
	l.registry.insert(tok, src)
	return nil
}

// Run blocks, executing tick in a loop until Shutdown is called or a fatal
// poller error occurs.
func (l *Loop) Run() error {
	if !l.state.TryTransition(StateAwake, StateRunning) {
		return ErrLoopAlreadyRunning
	}
	defer func() {
		l.state.Store(StateTerminated)
		l.queue.close()
		l.poller.close()
		l.wake.close()
	}()
	for {
		if l.state.Load() == StateTerminating {
			return nil
		}
		if err := l.tick(); err != nil {
			return err
		}
	}
}

// Shutdown requests that Run return after completing its current tick.
// Safe to call from any goroutine.
func (l *Loop) Shutdown() error {
	switch l.state.Load() {
	case StateAwake:
		return ErrLoopNotRunning
	case StateTerminated, StateTerminating:
		return nil
	}
	l.state.Store(StateTerminating)
	l.wake.wake()
	return nil
}

// tick performs one iteration: bounded poll, dispatch, drain+execute.
func (l *Loop) tick() error {
	// TryTransition rather than Store, so a concurrent Shutdown's
	// Terminating is not overwritten.
	l.state.TryTransition(StateRunning, StateSleeping)
	n, err := l.poller.wait(l.timeout, l.readyBuf)
	l.state.TryTransition(StateSleeping, StateRunning)
	if err != nil {
		return err
	}

	var batch []Command
	for i := 0; i < n; i++ {
		ev := l.readyBuf[i]
		if ev.Token == wakeToken {
			l.wake.drain()
			continue
		}
		src, ok := l.registry.get(ev.Token)
		if !ok {
			continue
		}
		batch = append(batch, src.HandleReady(ev.Events)...)
	}

	batch = l.queue.drainInto(batch)
	l.executeBatch(batch)
	return nil
}

func (l *Loop) executeBatch(cmds []Command) {
	view := loopView{l}
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		resp, err := cmd(view)
		if err != nil {
			logErr("command failed", err)
			continue
		}
		if resp == nil {
			continue
		}
		l.apply(resp)
	}
}

func (l *Loop) apply(resp Response) {
	switch r := resp.(type) {
	case NewSourceResponse:
		if _, exists := l.registry.get(r.Token); exists {
			logTokenErr("new source: token already registered", r.Token, ErrTokenAlreadyRegistered)
			return
		}
		if err := l.poller.register(r.Source.FD(), r.Token, r.Interest); err != nil {
			logTokenErr("new source: register failed", r.Token, err)
			return
		}
		l.registry.insert(r.Token, r.Source)

	case ModifyInterestsResponse:
		src, ok := l.registry.get(r.Token)
		if !ok {
			logTokenErr("modify interests: unknown token", r.Token, ErrUnknownToken)
			return
		}
		if err := l.poller.reregister(src.FD(), r.Token, r.Interest); err != nil {
			logTokenErr("modify interests: reregister failed", r.Token, err)
		}

	case CloseSourceResponse:
		src, ok := l.registry.get(r.Token)
		if !ok {
			return // idempotent close
		}
		if err := l.poller.deregister(src.FD()); err != nil {
			logTokenErr("close source: deregister failed", r.Token, err)
		}
		l.registry.remove(r.Token)

	case SubmitCommandResponse:
		if err := l.queue.push(r.Cmd); err != nil {
			logErr("resubmit failed", err)
		}
	}
}

// Len reports the number of sources currently registered. It reads the
// registry without locking, so call it from the loop goroutine (the
// reactor's /load overload check does) or while the loop is not running.
func (l *Loop) Len() int {
	return l.registry.len()
}
