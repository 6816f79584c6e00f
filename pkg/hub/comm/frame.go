package comm

import (
	"fmt"

	"github.com/robotalks/squidhub/pkg/hub/crc8"
)

// Frame layout.
const (
	FrameSize   = 8
	PayloadSize = FrameSize - 3

	tagOffset      = 0
	opcodeOffset   = 1
	payloadOffset  = 2
	checksumOffset = FrameSize - 1
)

// Opcodes understood by the hub firmware.
const (
	OpInitializeDrivers byte = 254
	OpReset             byte = 255
)

// Frame is an encoded command.
type Frame [FrameSize]byte

// BuildFrame assembles a frame and appends the checksum.
// A payload shorter than PayloadSize is zero padded.
func BuildFrame(tag, opcode byte, payload []byte) (f Frame, err error) {
	if len(payload) > PayloadSize {
		return f, &PayloadLengthError{Len: len(payload), Cap: PayloadSize}
	}
	f[tagOffset], f[opcodeOffset] = tag, opcode
	copy(f[payloadOffset:checksumOffset], payload)
	f[checksumOffset] = crc8.Checksum(f[:checksumOffset])
	return f, nil
}

// ResetFrame is the RESET command.
func ResetFrame(tag byte) Frame {
	f, _ := BuildFrame(tag, OpReset, nil)
	return f
}

// InitializeDriversFrame is the INITIALIZE_DRIVERS command.
func InitializeDriversFrame(tag byte) Frame {
	f, _ := BuildFrame(tag, OpInitializeDrivers, nil)
	return f
}

// ParseFrame validates bytes as a frame.
func ParseFrame(p []byte) (f Frame, err error) {
	if len(p) != FrameSize {
		return f, fmt.Errorf("%w: %d bytes", ErrFrameLength, len(p))
	}
	copy(f[:], p)
	if !f.Valid() {
		return f, fmt.Errorf("%w: got %#02x, want %#02x", ErrChecksumMismatch,
			f.Checksum(), crc8.Checksum(f[:checksumOffset]))
	}
	return f, nil
}

// Tag returns the tag byte.
func (f Frame) Tag() byte { return f[tagOffset] }

// Opcode returns the opcode.
func (f Frame) Opcode() byte { return f[opcodeOffset] }

// Payload returns a copy of the payload bytes.
func (f Frame) Payload() []byte {
	p := make([]byte, PayloadSize)
	copy(p, f[payloadOffset:checksumOffset])
	return p
}

// Checksum returns the trailing checksum byte.
func (f Frame) Checksum() byte { return f[checksumOffset] }

// Valid checks the trailing checksum against the preceding bytes.
func (f Frame) Valid() bool {
	return crc8.Checksum(f[:checksumOffset]) == f[checksumOffset]
}

// Bytes returns encoded bytes for sending.
func (f Frame) Bytes() []byte {
	b := make([]byte, FrameSize)
	copy(b, f[:])
	return b
}

// String dumps the frame in hex.
func (f Frame) String() string {
	return fmt.Sprintf("% x", f[:])
}
