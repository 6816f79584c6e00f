package sh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseByte(t *testing.T) {
	testCases := []struct {
		in  string
		out byte
		ok  bool
	}{
		{"0", 0, true},
		{"255", 255, true},
		{"0xff", 0xff, true},
		{"0XA5", 0xa5, true},
		{"0b101", 5, true},
		{"256", 0, false},
		{"-1", 0, false},
		{"ff", 0, false},
		{"", 0, false},
	}
	for _, tc := range testCases {
		b, err := ParseByte(tc.in)
		if !tc.ok {
			require.Errorf(t, err, "%q", tc.in)
			continue
		}
		require.NoErrorf(t, err, "%q", tc.in)
		require.Equal(t, tc.out, b)
	}
}

func TestParseBytes(t *testing.T) {
	p, err := ParseBytes([]string{"0x01", "2", "0x03:0x04", "5:"})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, p)

	p, err = ParseBytes(nil)
	require.NoError(t, err)
	require.Empty(t, p)

	_, err = ParseBytes([]string{"1", "0x100"})
	require.Error(t, err)
}

func TestParseCommand(t *testing.T) {
	tag, opcode, payload, err := ParseCommand([]string{"1", "0xfe"})
	require.NoError(t, err)
	require.Equal(t, byte(1), tag)
	require.Equal(t, byte(0xfe), opcode)
	require.Empty(t, payload)

	_, _, payload, err = ParseCommand([]string{"0", "13", "0x01:0x02", "3"})
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, payload)

	_, _, _, err = ParseCommand([]string{"0"})
	require.Error(t, err)
	_, _, _, err = ParseCommand([]string{"x", "1"})
	require.Error(t, err)
	_, _, _, err = ParseCommand([]string{"1", "300"})
	require.Error(t, err)
}
