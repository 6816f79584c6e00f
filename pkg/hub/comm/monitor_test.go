package comm

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

type chanReader struct {
	readCh <-chan []byte
}

func (r *chanReader) Read(p []byte) (int, error) {
	select {
	case b, ok := <-r.readCh:
		if !ok {
			return 0, io.EOF
		}
		return copy(p, b), nil
	case <-time.After(10 * time.Millisecond):
		return 0, nil
	}
}

func TestMonitorDelivers(t *testing.T) {
	readCh := make(chan []byte, 2)
	respCh := make(chan []byte, 2)
	m := NewMonitor(&chanReader{readCh: readCh}, HandleResponseFunc(func(ctx context.Context, p []byte) {
		respCh <- p
	}))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- m.Run(ctx) }()

	readCh <- []byte{1, 2, 3}
	readCh <- make([]byte, ResponseSize)
	for _, expect := range [][]byte{{1, 2, 3}, make([]byte, ResponseSize)} {
		select {
		case p := <-respCh:
			require.Equal(t, expect, p)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("response timeout")
		}
	}

	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("monitor didn't stop")
	}
}

func TestMonitorReadError(t *testing.T) {
	readCh := make(chan []byte)
	close(readCh)
	err := NewMonitor(&chanReader{readCh: readCh}, nil).Run(context.Background())
	require.Equal(t, io.EOF, err)
}

type scriptedReader struct {
	results []error
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	if len(r.results) == 0 {
		return 0, io.ErrClosedPipe
	}
	err := r.results[0]
	r.results = r.results[1:]
	return 0, err
}

func TestMonitorSkipsTimeouts(t *testing.T) {
	r := &scriptedReader{results: []error{timeoutErr{}, nil, &TransportError{Op: "read", Err: timeoutErr{}}}}
	err := NewMonitor(r, nil).Run(context.Background())
	require.True(t, errors.Is(err, io.ErrClosedPipe))
	require.Empty(t, r.results)
}
