package eventloop

import "testing"

type stubSource struct {
	fd     int
	events []IOEvents
}

func (s *stubSource) FD() int { return s.fd }

func (s *stubSource) HandleReady(events IOEvents) []Command {
	s.events = append(s.events, events)
	return nil
}

func TestRegistryInsertGetRemove(t *testing.T) {
	r := newRegistry()
	src := &stubSource{fd: 7}

	if !r.insert(1, src) {
		t.Fatalf("insert: want true for fresh token")
	}
	if r.insert(1, src) {
		t.Fatalf("insert: want false for duplicate token")
	}

	got, ok := r.get(1)
	if !ok || got != EventSource(src) {
		t.Fatalf("get(1) = %v, %v; want src, true", got, ok)
	}

	if _, ok := r.get(2); ok {
		t.Fatalf("get(2): want false for unregistered token")
	}

	r.remove(1)
	if _, ok := r.get(1); ok {
		t.Fatalf("get(1) after remove: want false")
	}
	// idempotent
	r.remove(1)
}

func TestSourceViewIsReadOnlyWindow(t *testing.T) {
	l := &Loop{registry: newRegistry()}
	src := &stubSource{fd: 3}
	l.registry.insert(5, src)

	view := loopView{l}
	got, ok := view.Get(5)
	if !ok || got != EventSource(src) {
		t.Fatalf("view.Get(5) = %v, %v", got, ok)
	}
}
