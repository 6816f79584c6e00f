package comm

import (
	"io"
	"sync"

	"github.com/golang/glog"
)

// Sender writes frames to a transport.
type Sender struct {
	Writer io.Writer

	lock sync.Mutex
}

// NewSender creates a Sender.
func NewSender(w io.Writer) *Sender {
	return &Sender{Writer: w}
}

// Send writes the frame with a single Write. The first failure is returned
// as-is; nothing is retried.
func (s *Sender) Send(f Frame) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if glog.V(2) {
		glog.Infof("SND %s", f)
	}
	n, err := s.Writer.Write(f[:])
	if err != nil {
		return err
	}
	if n != FrameSize {
		return &TransportError{Op: "write", Err: io.ErrShortWrite}
	}
	return nil
}

// Build assembles a frame and sends it. Nothing is written if the
// payload is invalid.
func (s *Sender) Build(tag, opcode byte, payload []byte) (Frame, error) {
	f, err := BuildFrame(tag, opcode, payload)
	if err != nil {
		return f, err
	}
	return f, s.Send(f)
}
