package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/squidhub/pkg/hub/comm"
)

func TestInfoOf(t *testing.T) {
	info := InfoOf(comm.InitializeDriversFrame(1))
	require.Equal(t, FrameInfo{
		Hex:      "01 fe 00 00 00 00 00 59",
		Tag:      1,
		Opcode:   comm.OpInitializeDrivers,
		Checksum: 0x59,
		Valid:    true,
	}, info)

	f := comm.ResetFrame(0)
	f[7] ^= 1
	require.False(t, InfoOf(f).Valid)
}
