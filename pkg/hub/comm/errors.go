package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPayloadLength indicates the payload doesn't fit in a frame.
	ErrInvalidPayloadLength = errors.New("invalid payload length")
	// ErrFrameLength indicates received bytes are not a whole frame.
	ErrFrameLength = errors.New("invalid frame length")
	// ErrChecksumMismatch indicates the trailing checksum is wrong.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// PayloadLengthError reports an oversized payload.
type PayloadLengthError struct {
	Len int
	Cap int
}

// Error implements error.
func (e *PayloadLengthError) Error() string {
	return fmt.Sprintf("%v: %d bytes, capacity %d", ErrInvalidPayloadLength, e.Len, e.Cap)
}

// Unwrap makes errors.Is(err, ErrInvalidPayloadLength) work.
func (e *PayloadLengthError) Unwrap() error {
	return ErrInvalidPayloadLength
}

// TransportError wraps a failure of the underlying byte transport.
type TransportError struct {
	Op   string
	Port string
	Err  error
}

// Error implements error.
func (e *TransportError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transport %s %s: %v", e.Op, e.Port, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
