package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/squidhub/pkg/hub/comm"
	"github.com/robotalks/squidhub/pkg/hub/transport/serial"
)

func TestIsRemote(t *testing.T) {
	testCases := []struct {
		port   string
		remote bool
	}{
		{"ws://127.0.0.1:8080/hub", true},
		{"wss://scope.local/hub", true},
		{"/dev/ttyACM0", false},
		{"COM3", false},
		{"wsfoo", false},
		{"http://127.0.0.1/hub", false},
		{"", false},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.remote, IsRemote(tc.port), "%q", tc.port)
	}
}

func TestOpenWebsocketError(t *testing.T) {
	for _, open := range []Opener{
		func(port string) (Transport, error) { return Open(port, serial.Options{}) },
		NewOpener(serial.Options{}),
	} {
		conn, err := open("ws://127.0.0.1:1/x")
		require.Nil(t, conn)
		var te *comm.TransportError
		require.True(t, errors.As(err, &te))
		require.Equal(t, "open", te.Op)
		require.Equal(t, "ws://127.0.0.1:1/x", te.Port)
	}
}

func TestOpenSerialInvalidOptions(t *testing.T) {
	// options are validated before the device is touched.
	conn, err := Open("/dev/squid-hub-missing", serial.Options{DataBits: 9})
	require.Nil(t, conn)
	require.Error(t, err)
	require.False(t, comm.IsTransportError(err))

	conn, err = NewOpener(serial.Options{StopBits: 3})("COM3")
	require.Nil(t, conn)
	require.Error(t, err)
	require.False(t, comm.IsTransportError(err))
}

func TestOpenSerialMissingDevice(t *testing.T) {
	conn, err := Open("/dev/squid-hub-missing", serial.Options{})
	require.Nil(t, conn)
	var te *comm.TransportError
	require.True(t, errors.As(err, &te))
	require.Equal(t, "open", te.Op)
	require.Equal(t, "/dev/squid-hub-missing", te.Port)
}
