package hub

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/squidhub/pkg/cli/sh"
	"github.com/robotalks/squidhub/pkg/env"
	squid "github.com/robotalks/squidhub/pkg/hub"
	"github.com/robotalks/squidhub/pkg/hub/comm"
	"github.com/robotalks/squidhub/pkg/hub/transport"
)

type testTransport struct {
	lock    sync.Mutex
	written bytes.Buffer
	closed  chan struct{}
	once    sync.Once
}

func (t *testTransport) Read(p []byte) (int, error) {
	<-t.closed
	return 0, io.ErrClosedPipe
}

func (t *testTransport) Write(p []byte) (int, error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.written.Write(p)
}

func (t *testTransport) Close() error {
	t.once.Do(func() { close(t.closed) })
	return nil
}

func (t *testTransport) bytes() []byte {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]byte(nil), t.written.Bytes()...)
}

type shellTestEnv struct {
	shell  *sh.Shell
	conn   *testTransport
	opened int
}

func newShellTestEnv(t *testing.T, port string) *shellTestEnv {
	e := &shellTestEnv{conn: &testTransport{closed: make(chan struct{})}}
	h := squid.New(func(string) (transport.Transport, error) {
		e.opened++
		return e.conn, nil
	})
	h.Settle = 0
	require.NoError(t, h.SetPort(port))
	e.shell = sh.NewWith(env.NewConfig(), h)
	e.shell.Interactive = false
	return e
}

func (e *shellTestEnv) Close() {
	e.shell.Hub.Shutdown()
}

func frameBytes(frames ...comm.Frame) []byte {
	var p []byte
	for _, f := range frames {
		p = append(p, f.Bytes()...)
	}
	return p
}

func TestSendInitializesOnDemand(t *testing.T) {
	env := newShellTestEnv(t, "/dev/ttyACM0")
	defer env.Close()
	env.shell.WithAutoInit(true)

	require.NoError(t, env.shell.Shell.Process("send", "2", "13", "1"))
	require.True(t, env.shell.Hub.Initialized())
	require.Equal(t, 1, env.opened)

	cmd, err := comm.BuildFrame(2, 13, []byte{1})
	require.NoError(t, err)
	require.Equal(t, frameBytes(comm.ResetFrame(0), comm.InitializeDriversFrame(1), cmd), env.conn.bytes())

	require.NoError(t, env.shell.Shell.Process("reset"))
	require.Equal(t, 1, env.opened)
	require.Equal(t, frameBytes(comm.ResetFrame(0), comm.InitializeDriversFrame(1), cmd, comm.ResetFrame(0)), env.conn.bytes())
}

func TestSendRequiresInit(t *testing.T) {
	env := newShellTestEnv(t, "/dev/ttyACM0")
	defer env.Close()

	err := env.shell.Shell.Process("send", "2", "13", "1")
	require.ErrorIs(t, err, squid.ErrNotInitialized)
	require.Zero(t, env.opened)
	require.Empty(t, env.conn.bytes())

	require.NoError(t, env.shell.Shell.Process("init"))
	require.NoError(t, env.shell.Shell.Process("send", "2", "13", "1"))
	require.Equal(t, 1, env.opened)
}

func TestAutoInitUndefinedPort(t *testing.T) {
	env := newShellTestEnv(t, squid.UndefinedPort)
	defer env.Close()
	env.shell.WithAutoInit(true)

	err := env.shell.Shell.Process("reset")
	require.ErrorIs(t, err, squid.ErrPortUndefined)
	require.Zero(t, env.opened)
}

func TestOfflineCommandsKeepPortClosed(t *testing.T) {
	env := newShellTestEnv(t, "/dev/ttyACM0")
	defer env.Close()
	env.shell.WithAutoInit(true)

	require.NoError(t, env.shell.Shell.Process("port"))
	require.NoError(t, env.shell.Shell.Process("status"))
	require.NoError(t, env.shell.Shell.Process("port", "/dev/ttyACM1"))
	require.Equal(t, "/dev/ttyACM1", env.shell.Hub.Port())
	require.Zero(t, env.opened)
	require.False(t, env.shell.Hub.Initialized())
}
