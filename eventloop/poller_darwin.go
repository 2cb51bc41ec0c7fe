//go:build darwin

package eventloop

import (
	"golang.org/x/sys/unix"
)

// maxFDs bounds the direct-indexed fd->token table; see poller_linux.go.
const maxFDs = 65536

type kqueuePoller struct {
	kq       int
	eventBuf [256]unix.Kevent_t
	tokens   [maxFDs]Token
	active   [maxFDs]bool
}

func newPoller() poller {
	return &kqueuePoller{}
}

func (p *kqueuePoller) init() error {
	kq, err := unix.Kqueue()
	if err != nil {
		return err
	}
	unix.CloseOnExec(kq)
	p.kq = kq
	return nil
}

func (p *kqueuePoller) close() error {
	return unix.Close(p.kq)
}

func (p *kqueuePoller) register(fd int, token Token, events IOEvents) error {
	if fd < 0 || fd >= maxFDs {
		return ErrFDOutOfRange
	}
	kevents := eventsToKevents(fd, events, unix.EV_ADD|unix.EV_ENABLE)
	if len(kevents) > 0 {
		if _, err := unix.Kevent(p.kq, kevents, nil, nil); err != nil {
			return err
		}
	}
	p.tokens[fd] = token
	p.active[fd] = true
	return nil
}

func (p *kqueuePoller) reregister(fd int, token Token, events IOEvents) error {
	if fd < 0 || fd >= maxFDs {
		return ErrFDOutOfRange
	}
	// kqueue has no in-place modify: delete every filter then re-add the
	// requested set. Deletes on filters that were never added are ignored.
	delAll := eventsToKevents(fd, EventRead|EventWrite, unix.EV_DELETE)
	unix.Kevent(p.kq, delAll, nil, nil)
	addEvents := eventsToKevents(fd, events, unix.EV_ADD|unix.EV_ENABLE)
	if len(addEvents) > 0 {
		if _, err := unix.Kevent(p.kq, addEvents, nil, nil); err != nil {
			return err
		}
	}
	p.tokens[fd] = token
	return nil
}

func (p *kqueuePoller) deregister(fd int) error {
	if fd < 0 || fd >= maxFDs {
		return ErrFDOutOfRange
	}
	p.active[fd] = false
	kevents := eventsToKevents(fd, EventRead|EventWrite, unix.EV_DELETE)
	if len(kevents) > 0 {
		unix.Kevent(p.kq, kevents, nil, nil) // ignore errors on delete
	}
	return nil
}

func (p *kqueuePoller) wait(timeoutMs int, out []ReadyEvent) (int, error) {
	var ts *unix.Timespec
	if timeoutMs >= 0 {
		ts = &unix.Timespec{
			Sec:  int64(timeoutMs / 1000),
			Nsec: int64((timeoutMs % 1000) * 1000000),
		}
	}
	n, err := unix.Kevent(p.kq, nil, p.eventBuf[:], ts)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for i := 0; i < n && count < len(out); i++ {
		fd := int(p.eventBuf[i].Ident)
		if fd < 0 || fd >= maxFDs || !p.active[fd] {
			continue
		}
		out[count] = ReadyEvent{Token: p.tokens[fd], Events: keventToEvents(&p.eventBuf[i])}
		count++
	}
	return count, nil
}

func eventsToKevents(fd int, events IOEvents, flags uint16) []unix.Kevent_t {
	var kevents []unix.Kevent_t
	if events&EventRead != 0 {
		kevents = append(kevents, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: flags})
	}
	if events&EventWrite != 0 {
		kevents = append(kevents, unix.Kevent_t{Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: flags})
	}
	return kevents
}

func keventToEvents(kev *unix.Kevent_t) IOEvents {
	var events IOEvents
	switch kev.Filter {
	case unix.EVFILT_READ:
		events |= EventRead
	case unix.EVFILT_WRITE:
		events |= EventWrite
	}
	if kev.Flags&unix.EV_ERROR != 0 {
		events |= EventError
	}
	if kev.Flags&unix.EV_EOF != 0 {
		events |= EventHangup
	}
	return events
}
