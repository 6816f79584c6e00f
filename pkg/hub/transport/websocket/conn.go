// Package websocket tunnels hub frames over a websocket, e.g. to a serial
// bridge running next to the microscope.
package websocket

import (
	"net/url"

	"golang.org/x/net/websocket"

	"github.com/robotalks/squidhub/pkg/hub/comm"
)

// Conn implements a hub transport. Every Write is sent as one binary message.
type Conn struct {
	URL string

	ws *websocket.Conn
}

// Dial connects to the websocket endpoint.
func Dial(endpoint string) (*Conn, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &comm.TransportError{Op: "open", Port: endpoint, Err: err}
	}
	origin := "http://" + u.Host
	if u.Scheme == "wss" {
		origin = "https://" + u.Host
	}
	ws, err := websocket.Dial(endpoint, "", origin)
	if err != nil {
		return nil, &comm.TransportError{Op: "open", Port: endpoint, Err: err}
	}
	return New(endpoint, ws), nil
}

// New wraps an established websocket.Conn.
func New(endpoint string, ws *websocket.Conn) *Conn {
	ws.PayloadType = websocket.BinaryFrame
	return &Conn{URL: endpoint, ws: ws}
}

// Read implements io.Reader.
func (c *Conn) Read(p []byte) (int, error) {
	n, err := c.ws.Read(p)
	if err != nil {
		return n, &comm.TransportError{Op: "read", Port: c.URL, Err: err}
	}
	return n, nil
}

// Write implements io.Writer.
func (c *Conn) Write(p []byte) (int, error) {
	var msg []byte
	msg = append(msg, p...)
	if err := websocket.Message.Send(c.ws, msg); err != nil {
		return 0, &comm.TransportError{Op: "write", Port: c.URL, Err: err}
	}
	return len(p), nil
}

// Close implements io.Closer.
func (c *Conn) Close() error {
	if err := c.ws.Close(); err != nil {
		return &comm.TransportError{Op: "close", Port: c.URL, Err: err}
	}
	return nil
}
