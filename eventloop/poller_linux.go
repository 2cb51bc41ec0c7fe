//go:build linux

package eventloop

import (
	"golang.org/x/sys/unix"
)

// maxFDs bounds the direct-indexed fd->token table. Raising it only costs
// address space (the arrays are never fully faulted in), so pick something
// generous.
const maxFDs = 65536

type epollPoller struct {
	epfd     int
	eventBuf [256]unix.EpollEvent
	tokens   [maxFDs]Token
	active   [maxFDs]bool
}

func newPoller() poller {
	return &epollPoller{}
}

func (p *epollPoller) init() error {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return err
	}
	p.epfd = epfd
	return nil
}

func (p *epollPoller) close() error {
	return unix.Close(p.epfd)
}

func (p *epollPoller) register(fd int, token Token, events IOEvents) error {
	if fd < 0 || fd >= maxFDs {
		return ErrFDOutOfRange
	}
	ev := &unix.EpollEvent{Events: eventsToEpoll(events), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, ev); err != nil {
		return err
	}
	p.tokens[fd] = token
	p.active[fd] = true
	return nil
}

func (p *epollPoller) reregister(fd int, token Token, events IOEvents) error {
	if fd < 0 || fd >= maxFDs {
		return ErrFDOutOfRange
	}
	ev := &unix.EpollEvent{Events: eventsToEpoll(events), Fd: int32(fd)}
	if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, ev); err != nil {
		return err
	}
	p.tokens[fd] = token
	return nil
}

func (p *epollPoller) deregister(fd int) error {
	if fd < 0 || fd >= maxFDs {
		return ErrFDOutOfRange
	}
	p.active[fd] = false
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

func (p *epollPoller) wait(timeoutMs int, out []ReadyEvent) (int, error) {
	n, err := unix.EpollWait(p.epfd, p.eventBuf[:], timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	count := 0
	for i := 0; i < n && count < len(out); i++ {
		fd := int(p.eventBuf[i].Fd)
		if fd < 0 || fd >= maxFDs || !p.active[fd] {
			continue
		}
		out[count] = ReadyEvent{Token: p.tokens[fd], Events: epollToEvents(p.eventBuf[i].Events)}
		count++
	}
	return count, nil
}

func eventsToEpoll(events IOEvents) uint32 {
	var e uint32
	if events&EventRead != 0 {
		e |= unix.EPOLLIN
	}
	if events&EventWrite != 0 {
		e |= unix.EPOLLOUT
	}
	return e
}

func epollToEvents(e uint32) IOEvents {
	var events IOEvents
	if e&unix.EPOLLIN != 0 {
		events |= EventRead
	}
	if e&unix.EPOLLOUT != 0 {
		events |= EventWrite
	}
	if e&unix.EPOLLERR != 0 {
		events |= EventError
	}
	if e&unix.EPOLLHUP != 0 {
		events |= EventHangup
	}
	return events
}
