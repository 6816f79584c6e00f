// Package serial opens hub transports on serial/USB CDC devices.
package serial

import (
	"io"
	"sort"
	"time"

	"github.com/golang/glog"
	bugst "go.bug.st/serial"

	"github.com/robotalks/squidhub/pkg/hub/comm"
)

// Device is the subset of go.bug.st/serial.Port used by Port.
type Device interface {
	io.ReadWriteCloser
	SetReadTimeout(time.Duration) error
	ResetInputBuffer() error
}

// OpenFunc opens a device. Replaced in tests.
type OpenFunc func(name string, mode *bugst.Mode) (Device, error)

// Port is an opened serial port.
type Port struct {
	Name string

	dev Device
}

func openDevice(name string, mode *bugst.Mode) (Device, error) {
	port, err := bugst.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return port, nil
}

// Open opens the named serial port.
func Open(name string, opts Options) (*Port, error) {
	return OpenWith(openDevice, name, opts)
}

// OpenWith opens the port using the given OpenFunc.
func OpenWith(open OpenFunc, name string, opts Options) (*Port, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	mode, err := opts.Mode()
	if err != nil {
		return nil, err
	}
	dev, err := open(name, mode)
	if err != nil {
		return nil, &comm.TransportError{Op: "open", Port: name, Err: err}
	}
	if err := dev.SetReadTimeout(opts.ReadTimeout); err != nil {
		dev.Close()
		return nil, &comm.TransportError{Op: "open", Port: name, Err: err}
	}
	if err := dev.ResetInputBuffer(); err != nil {
		glog.Warningf("serial %s: reset input buffer: %v", name, err)
	}
	glog.Infof("serial %s opened at %d baud", name, opts.BaudRate)
	return &Port{Name: name, dev: dev}, nil
}

// Read implements io.Reader. A read timeout returns 0 bytes and nil error.
func (p *Port) Read(b []byte) (int, error) {
	n, err := p.dev.Read(b)
	if err != nil {
		return n, &comm.TransportError{Op: "read", Port: p.Name, Err: err}
	}
	return n, nil
}

// Write implements io.Writer.
func (p *Port) Write(b []byte) (int, error) {
	n, err := p.dev.Write(b)
	if err != nil {
		return n, &comm.TransportError{Op: "write", Port: p.Name, Err: err}
	}
	return n, nil
}

// Close implements io.Closer.
func (p *Port) Close() error {
	if err := p.dev.Close(); err != nil {
		return &comm.TransportError{Op: "close", Port: p.Name, Err: err}
	}
	return nil
}

// List returns the names of serial ports present on the system.
func List() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, err
	}
	sort.Strings(ports)
	return ports, nil
}
