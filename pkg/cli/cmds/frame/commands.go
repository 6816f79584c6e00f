// Package frame provides offline frame commands for the shell.
package frame

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/squidhub/pkg/cli/sh"
	"github.com/robotalks/squidhub/pkg/hub/comm"
	"github.com/robotalks/squidhub/pkg/hub/crc8"
)

// FrameInfo is the JSON form of a frame.
type FrameInfo struct {
	Hex      string `json:"hex"`
	Tag      byte   `json:"tag"`
	Opcode   byte   `json:"opcode"`
	Checksum byte   `json:"crc"`
	Valid    bool   `json:"valid"`
}

// InfoOf describes a frame.
func InfoOf(f comm.Frame) FrameInfo {
	return FrameInfo{
		Hex:      f.String(),
		Tag:      f.Tag(),
		Opcode:   f.Opcode(),
		Checksum: f.Checksum(),
		Valid:    f.Valid(),
	}
}

var (
	// CRCCmd computes CRC8 of bytes.
	CRCCmd = ishell.Cmd{
		Name: "crc",
		Help: "BYTE...",
		Func: func(c *ishell.Context) {
			p, err := sh.ParseBytes(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sum := crc8.Checksum(p)
			sh.Print(c, map[string]byte{"crc": sum}, fmt.Sprintf("0x%02x", sum))
		},
	}

	// FrameCmd builds a frame without sending it.
	FrameCmd = ishell.Cmd{
		Name: "frame",
		Help: "TAG OPCODE [PAYLOAD...]",
		Func: func(c *ishell.Context) {
			tag, opcode, payload, err := sh.ParseCommand(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			f, err := comm.BuildFrame(tag, opcode, payload)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Print(c, InfoOf(f), f.String())
		},
	}

	// VerifyCmd validates a received frame.
	VerifyCmd = ishell.Cmd{
		Name: "verify",
		Help: "BYTE...",
		Func: func(c *ishell.Context) {
			p, err := sh.ParseBytes(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			f, err := comm.ParseFrame(p)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Print(c, InfoOf(f), fmt.Sprintf("OK tag=%d opcode=%d crc=0x%02x", f.Tag(), f.Opcode(), f.Checksum()))
		},
	}
)

func init() {
	sh.AddCmds(
		&CRCCmd,
		&FrameCmd,
		&VerifyCmd,
	)
}
