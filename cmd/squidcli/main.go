package main

import (
	"github.com/robotalks/squidhub/pkg/cli/sh"
	"github.com/robotalks/squidhub/pkg/env"

	_ "github.com/robotalks/squidhub/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
