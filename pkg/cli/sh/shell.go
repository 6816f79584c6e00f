// Package sh provides the interactive shell talking to a local hub.
package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/squidhub/pkg/env"
	"github.com/robotalks/squidhub/pkg/hub"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoInit    bool

	Shell  *ishell.Shell
	Config *env.Config
	Hub    *hub.Hub
}

const (
	shellKey = "$shell"
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	commands []*ishell.Cmd
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) (*Shell, error) {
	h, err := conf.NewHub()
	if err != nil {
		return nil, err
	}
	return NewWith(conf, h), nil
}

// NewWith creates a new shell driving h.
func NewWith(conf *env.Config, h *hub.Hub) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		Hub:    h,
	}
	s.Shell.Set(shellKey, s)
	s.UpdatePrompt()
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// WithAutoInit sets AutoInit.
func (s *Shell) WithAutoInit(en bool) *Shell {
	s.AutoInit = en
	return s
}

// EnsureInitialized initializes the hub on demand when AutoInit is set
// and a port is configured.
func (s *Shell) EnsureInitialized(ctx context.Context) error {
	if s.Hub.Initialized() {
		return nil
	}
	if !s.AutoInit {
		return hub.ErrNotInitialized
	}
	if port := s.Hub.Port(); port == "" || port == hub.UndefinedPort {
		return hub.ErrPortUndefined
	}
	if s.Interactive {
		s.Shell.Printf("Initializing %s ...\n", s.Hub.Port())
	}
	err := s.Hub.Initialize(ctx)
	s.UpdatePrompt()
	return err
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// UpdatePrompt reflects the hub state in the prompt.
func (s *Shell) UpdatePrompt() {
	state := "-"
	if s.Hub.Initialized() {
		state = "+"
	}
	s.Shell.SetPrompt(fmt.Sprintf("[%s%s] > ", state, s.Hub.Port()))
}

// MustBeInitialized wraps command func requires an initialized hub.
func MustBeInitialized(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if err := ShellFrom(c).EnsureInitialized(context.Background()); err != nil {
			c.Err(err)
			return
		}
		fn(c)
	}
}

// Print prints v as JSON when requested, otherwise text.
func Print(c *ishell.Context, v interface{}, text string) {
	if ShellFrom(c).OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Println(text)
}

// ParseByte parses a byte in decimal, 0x hex, 0o octal or 0b binary.
func ParseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// ParseBytes parses each argument as a byte. Arguments containing ':'
// are split, so "00:ff" is accepted as two bytes.
func ParseBytes(args []string) ([]byte, error) {
	var p []byte
	for _, arg := range args {
		for _, s := range strings.Split(arg, ":") {
			if s == "" {
				continue
			}
			b, err := ParseByte(s)
			if err != nil {
				return nil, err
			}
			p = append(p, b)
		}
	}
	return p, nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Hub.Shutdown()
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	s, err := New(env.NewConfig())
	if err != nil {
		log.Fatalln(err)
	}
	s.WithAutoInit(true).Run(flag.Args()...)
}

// ParseCommand parses TAG OPCODE [PAYLOAD...].
func ParseCommand(args []string) (tag, opcode byte, payload []byte, err error) {
	if len(args) < 2 {
		err = fmt.Errorf("TAG and OPCODE expected")
		return
	}
	if tag, err = ParseByte(args[0]); err != nil {
		return
	}
	if opcode, err = ParseByte(args[1]); err != nil {
		return
	}
	payload, err = ParseBytes(args[2:])
	return
}
