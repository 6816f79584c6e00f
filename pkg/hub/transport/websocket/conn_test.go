package websocket

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/robotalks/squidhub/pkg/hub/comm"
)

func TestConnFrames(t *testing.T) {
	recvCh := make(chan []byte, 2)
	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		for {
			var msg []byte
			if err := websocket.Message.Receive(ws, &msg); err != nil {
				return
			}
			recvCh <- msg
			// echo a short status back.
			if err := websocket.Message.Send(ws, []byte{msg[0], 0}); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	conn, err := Dial("ws" + strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, err)
	defer conn.Close()

	sender := comm.NewSender(conn)
	require.NoError(t, sender.Send(comm.ResetFrame(0)))
	require.NoError(t, sender.Send(comm.InitializeDriversFrame(1)))

	for _, expect := range []comm.Frame{comm.ResetFrame(0), comm.InitializeDriversFrame(1)} {
		select {
		case msg := <-recvCh:
			require.Equal(t, expect.Bytes(), msg)
		case <-time.After(time.Second):
			t.Fatal("frame not received")
		}
	}

	buf := make([]byte, comm.ResponseSize)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0}, buf[:n])
}

func TestDialError(t *testing.T) {
	_, err := Dial("ws://127.0.0.1:1/hub")
	require.True(t, comm.IsTransportError(err))
}

func TestConnCloseError(t *testing.T) {
	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		var msg []byte
		websocket.Message.Receive(ws, &msg)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := Dial(url)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	err = conn.Close()
	var te *comm.TransportError
	require.True(t, errors.As(err, &te))
	require.Equal(t, "close", te.Op)
	require.Equal(t, url, te.Port)
}
