package comm

import (
	"context"
	"errors"
	"io"

	"github.com/golang/glog"
)

// ResponseSize is the largest chunk the hub reports at once.
const ResponseSize = 24

// ResponseHandler is called with bytes received from the hub.
type ResponseHandler interface {
	HandleResponse(context.Context, []byte)
}

// HandleResponseFunc is func type of ResponseHandler.
type HandleResponseFunc func(context.Context, []byte)

// HandleResponse implements ResponseHandler.
func (f HandleResponseFunc) HandleResponse(ctx context.Context, p []byte) {
	f(ctx, p)
}

// Monitor polls the transport for data coming back from the hub.
type Monitor struct {
	Reader  io.Reader
	Handler ResponseHandler
}

// NewMonitor creates a Monitor.
func NewMonitor(r io.Reader, h ResponseHandler) *Monitor {
	return &Monitor{Reader: r, Handler: h}
}

// Run implements Runnable. The Reader is expected to return periodically
// (read timeout) or fail once closed, so cancellation is observed between
// reads.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, ResponseSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := m.Reader.Read(buf)
		if n > 0 {
			if glog.V(2) {
				glog.Infof("RCV % x", buf[:n])
			}
			if h := m.Handler; h != nil {
				data := make([]byte, n)
				copy(data, buf[:n])
				h.HandleResponse(ctx, data)
			}
		}
		if err != nil {
			if isTimeout(err) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
