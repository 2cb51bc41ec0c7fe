//go:build linux || darwin

package reactor

import (
	"testing"
	"time"

	"github.com/BenChaimberg/evhttpd/eventloop"
	"github.com/stretchr/testify/require"
)

type fakeView map[eventloop.Token]eventloop.EventSource

func (v fakeView) Get(tok eventloop.Token) (eventloop.EventSource, bool) {
	src, ok := v[tok]
	return src, ok
}

func TestTimeoutSupervisorStopsWhenTokenAbsent(t *testing.T) {
	cmd := timeoutSupervisor(99)
	resp, err := cmd(fakeView{})
	require.NoError(t, err)
	require.Nil(t, resp)
}

func TestTimeoutSupervisorStopsWhenPastRead(t *testing.T) {
	conn := &Connection{state: connStateWrite, acceptedAt: time.Now()}
	view := fakeView{5: conn}
	cmd := timeoutSupervisor(5)
	resp, err := cmd(view)
	require.NoError(t, err)
	require.Nil(t, resp)
}

func TestTimeoutSupervisorClosesExpiredConnection(t *testing.T) {
	conn := &Connection{state: connStateRead, acceptedAt: time.Now().Add(-2 * ReadTimeout)}
	view := fakeView{5: conn}
	cmd := timeoutSupervisor(5)
	resp, err := cmd(view)
	require.NoError(t, err)
	close, ok := resp.(eventloop.CloseSourceResponse)
	require.True(t, ok)
	require.Equal(t, eventloop.Token(5), close.Token)
}

func TestTimeoutSupervisorResubmitsWhenNotExpired(t *testing.T) {
	conn := &Connection{state: connStateRead, acceptedAt: time.Now()}
	view := fakeView{5: conn}
	cmd := timeoutSupervisor(5)
	resp, err := cmd(view)
	require.NoError(t, err)
	_, ok := resp.(eventloop.SubmitCommandResponse)
	require.True(t, ok)
}
