// Package comm provides the Squid hub command framing.
package comm

// Commands are communicated from the host to the hub firmware as fixed
// 8-byte frames over a peer-to-peer channel (serial port or USB CDC):
//
//	[0]    tag, a sequence/length marker chosen by the sender
//	[1]    opcode
//	[2..6] opcode specific payload, zero padded
//	[7]    CRC-8 (poly 0x07) over bytes 0..6
//
// Frames are one-shot: there is no handshake, no acknowledgement and no
// retransmission at this layer. Data flowing back from the hub is handed
// to a ResponseHandler untouched.
//
// Producer: host
// Consumer: hub firmware
