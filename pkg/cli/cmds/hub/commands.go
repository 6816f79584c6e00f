// Package hub provides shell commands driving the hub.
package hub

import (
	"context"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/squidhub/pkg/cli/sh"
	"github.com/robotalks/squidhub/pkg/hub/comm"
	"github.com/robotalks/squidhub/pkg/hub/transport/serial"
)

func sendFrame(c *ishell.Context, tag, opcode byte, payload []byte) {
	f, err := sh.ShellFrom(c).Hub.SendCommand(tag, opcode, payload)
	if err != nil {
		c.Err(err)
		return
	}
	sh.Print(c, map[string]string{"sent": f.String()}, "SND "+f.String())
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"ls"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ports, err := serial.List()
			if err != nil {
				c.Err(err)
				return
			}
			if ports == nil {
				ports = []string{}
			}
			sh.Print(c, ports, strings.Join(ports, "\n"))
		},
	}

	// PortCmd shows or changes the hub port.
	PortCmd = ishell.Cmd{
		Name: "port",
		Help: "[NAME]",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			if len(c.Args) == 0 {
				sh.Print(c, map[string]string{"port": s.Hub.Port()}, s.Hub.Port())
				return
			}
			if err := s.Hub.SetPort(c.Args[0]); err != nil {
				c.Err(err)
				return
			}
			s.UpdatePrompt()
		},
	}

	// InitCmd opens the port and initializes the hub.
	InitCmd = ishell.Cmd{
		Name:    "init",
		Aliases: []string{"open"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			if err := s.Hub.Initialize(context.Background()); err != nil {
				c.Err(err)
				return
			}
			s.UpdatePrompt()
		},
	}

	// ShutdownCmd closes the port.
	ShutdownCmd = ishell.Cmd{
		Name:    "shutdown",
		Aliases: []string{"close"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			if err := s.Hub.Shutdown(); err != nil {
				c.Err(err)
			}
			s.UpdatePrompt()
		},
	}

	// ResetCmd sends RESET.
	ResetCmd = ishell.Cmd{
		Name: "reset",
		Help: "[TAG]",
		Func: sh.MustBeInitialized(func(c *ishell.Context) {
			var tag byte
			if len(c.Args) > 0 {
				var err error
				if tag, err = sh.ParseByte(c.Args[0]); err != nil {
					c.Err(err)
					return
				}
			}
			sendFrame(c, tag, comm.OpReset, nil)
		}),
	}

	// SendCmd sends an arbitrary command.
	SendCmd = ishell.Cmd{
		Name: "send",
		Help: "TAG OPCODE [PAYLOAD...]",
		Func: sh.MustBeInitialized(func(c *ishell.Context) {
			tag, opcode, payload, err := sh.ParseCommand(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			sendFrame(c, tag, opcode, payload)
		}),
	}

	// StatusCmd prints the hub status.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			st := s.Hub.Status()
			sh.Print(c, st, fmt.Sprintf("%s port=%s initialized=%v sent=%d received=%d peripherals=%s",
				s.Hub.Name(), st.Port, st.Initialized, st.FramesSent, st.ResponsesReceived,
				strings.Join(s.Hub.Peripherals(), ",")))
		},
	}
)

func init() {
	sh.AddCmds(
		&PortsCmd,
		&PortCmd,
		&InitCmd,
		&ShutdownCmd,
		&ResetCmd,
		&SendCmd,
		&StatusCmd,
	)
}
