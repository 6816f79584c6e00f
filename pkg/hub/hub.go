// Package hub drives a Squid peripheral hub board.
package hub

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/squidhub/pkg/hub/comm"
	"github.com/robotalks/squidhub/pkg/hub/transport"
)

// Names of the hub and the peripherals it installs.
const (
	DeviceName       = "SquidHub"
	LEDShutterName   = "LEDs"
	UndefinedPort    = "Undefined"
	DefaultSettle    = 200 * time.Millisecond
	resetTag         = 0x00
	initDriversTag   = 0x01
	monitorStopLimit = time.Second
)

// DetectionStatus reports whether a device can be talked to.
type DetectionStatus int

// Detection results.
const (
	Unimplemented DetectionStatus = iota
	Misconfigured
	CanNotCommunicate
	CanCommunicate
)

// Status is a snapshot of the hub state.
type Status struct {
	Port              string
	Initialized       bool
	FramesSent        uint64
	ResponsesReceived uint64
}

// Hub is the host side of the hub board.
type Hub struct {
	// Opener opens the transport by port name.
	Opener transport.Opener
	// Handler receives data coming back from the hub, optional.
	Handler comm.ResponseHandler
	// Settle is the delay after opening the port before the first command.
	Settle time.Duration

	lock         sync.Mutex
	port         string
	initialized  bool
	initializing bool
	conn         transport.Transport
	sender       *comm.Sender
	monitor      *monitorRun

	framesSent        uint64
	responsesReceived uint64
}

// New creates a Hub.
func New(opener transport.Opener) *Hub {
	return &Hub{
		Opener: opener,
		Settle: DefaultSettle,
		port:   UndefinedPort,
	}
}

// Name returns the device name.
func (h *Hub) Name() string {
	return DeviceName
}

// Port gets the configured port.
func (h *Hub) Port() string {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.port
}

// SetPort configures the port. It fails once the hub is initialized and
// the previous value is kept.
func (h *Hub) SetPort(port string) error {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.initialized || h.initializing {
		return ErrPortChangeForbidden
	}
	h.port = port
	return nil
}

// Initialized indicates Initialize succeeded and Shutdown is not called.
func (h *Hub) Initialized() bool {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.initialized
}

// Initialize opens the port, starts the response monitor and resets the
// board. It's a no-op if already initialized. The hub lock is not held
// while the port opens and settles, so Status and Port stay responsive.
func (h *Hub) Initialize(ctx context.Context) error {
	h.lock.Lock()
	if h.initialized {
		h.lock.Unlock()
		return nil
	}
	if h.initializing {
		h.lock.Unlock()
		return ErrInitializing
	}
	port := h.port
	if port == "" || port == UndefinedPort {
		h.lock.Unlock()
		return ErrPortUndefined
	}
	h.initializing = true
	h.lock.Unlock()

	conn, err := h.open(ctx, port)

	h.lock.Lock()
	defer h.lock.Unlock()
	h.initializing = false
	if err != nil {
		return err
	}

	h.conn, h.sender = conn, comm.NewSender(conn)
	h.startMonitor()

	for _, f := range []comm.Frame{
		comm.ResetFrame(resetTag),
		comm.InitializeDriversFrame(initDriversTag),
	} {
		if err = h.send(f); err != nil {
			glog.Errorf("%s %s: initialize: %v", DeviceName, h.port, err)
			h.close()
			return err
		}
	}
	h.initialized = true
	glog.Infof("%s %s initialized", DeviceName, h.port)
	return nil
}

// SendCommand builds and sends a command frame.
func (h *Hub) SendCommand(tag, opcode byte, payload []byte) (comm.Frame, error) {
	f, err := comm.BuildFrame(tag, opcode, payload)
	if err != nil {
		return f, err
	}
	h.lock.Lock()
	defer h.lock.Unlock()
	if !h.initialized {
		return f, ErrNotInitialized
	}
	return f, h.send(f)
}

// Shutdown stops the monitor and closes the port.
func (h *Hub) Shutdown() error {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.conn == nil {
		return nil
	}
	err := h.close()
	h.initialized = false
	glog.Infof("%s %s shutdown", DeviceName, h.port)
	return err
}

// Busy implements the device contract; frames are fire-and-forget.
func (h *Hub) Busy() bool {
	return false
}

// DetectDevice reports whether the hub can communicate.
func (h *Hub) DetectDevice() DetectionStatus {
	if port := h.Port(); port == "" || port == UndefinedPort {
		return Misconfigured
	}
	return CanCommunicate
}

// Peripherals returns the names of devices installed behind the hub.
func (h *Hub) Peripherals() []string {
	if h.DetectDevice() != CanCommunicate {
		return nil
	}
	return []string{LEDShutterName}
}

// Status gets a snapshot of the hub state.
func (h *Hub) Status() Status {
	h.lock.Lock()
	defer h.lock.Unlock()
	return Status{
		Port:              h.port,
		Initialized:       h.initialized,
		FramesSent:        atomic.LoadUint64(&h.framesSent),
		ResponsesReceived: atomic.LoadUint64(&h.responsesReceived),
	}
}

// HandleResponse implements ResponseHandler.
func (h *Hub) HandleResponse(ctx context.Context, p []byte) {
	atomic.AddUint64(&h.responsesReceived, 1)
	if handler := h.Handler; handler != nil {
		handler.HandleResponse(ctx, p)
	}
}

func (h *Hub) open(ctx context.Context, port string) (transport.Transport, error) {
	conn, err := h.Opener(port)
	if err != nil {
		return nil, err
	}
	if h.Settle > 0 {
		select {
		case <-time.After(h.Settle):
		case <-ctx.Done():
			conn.Close()
			return nil, ctx.Err()
		}
	}
	return conn, nil
}

func (h *Hub) send(f comm.Frame) error {
	if err := h.sender.Send(f); err != nil {
		return err
	}
	atomic.AddUint64(&h.framesSent, 1)
	return nil
}

type monitorRun struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

func (h *Hub) startMonitor() {
	ctx, cancel := context.WithCancel(context.Background())
	run := &monitorRun{cancel: cancel, done: make(chan struct{})}
	h.monitor = run
	m := comm.NewMonitor(h.conn, h)
	go func() {
		defer close(run.done)
		run.err = m.Run(ctx)
		if run.err != nil && !errors.Is(run.err, context.Canceled) {
			glog.Warningf("%s monitor stopped: %v", DeviceName, run.err)
		}
	}()
}

func (h *Hub) close() error {
	h.monitor.cancel()
	err := h.conn.Close()
	select {
	case <-h.monitor.done:
	case <-time.After(monitorStopLimit):
		glog.Warningf("%s monitor didn't stop in %v", DeviceName, monitorStopLimit)
	}
	h.conn, h.sender, h.monitor = nil, nil, nil
	return err
}

// Run implements Runnable. The hub is initialized and kept until ctx is
// done or the port stops delivering data.
func (h *Hub) Run(ctx context.Context) error {
	if err := h.Initialize(ctx); err != nil {
		return err
	}
	h.lock.Lock()
	run := h.monitor
	h.lock.Unlock()
	if run == nil {
		return ErrNotInitialized
	}
	select {
	case <-ctx.Done():
		h.Shutdown()
		return ctx.Err()
	case <-run.done:
		h.Shutdown()
		if run.err == nil {
			return io.EOF
		}
		return run.err
	}
}
