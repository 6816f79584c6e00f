// Package transport opens the byte channel to the hub by port identifier.
package transport

import (
	"io"
	"strings"

	"github.com/robotalks/squidhub/pkg/hub/transport/serial"
	"github.com/robotalks/squidhub/pkg/hub/transport/websocket"
)

// Transport is a bidirectional byte channel to the hub.
type Transport interface {
	io.ReadWriteCloser
}

// Opener opens a Transport for a port identifier.
type Opener func(port string) (Transport, error)

// IsRemote reports whether the port identifier names a websocket tunnel.
func IsRemote(port string) bool {
	return strings.HasPrefix(port, "ws://") || strings.HasPrefix(port, "wss://")
}

// Open opens the port. Websocket URLs are dialed, anything else is treated
// as a serial device.
func Open(port string, opts serial.Options) (Transport, error) {
	if IsRemote(port) {
		conn, err := websocket.Dial(port)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	p, err := serial.Open(port, opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewOpener binds serial options into an Opener.
func NewOpener(opts serial.Options) Opener {
	return func(port string) (Transport, error) {
		return Open(port, opts)
	}
}
