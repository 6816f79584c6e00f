// Package all registers all shell commands.
package all

import (
	_ "github.com/robotalks/squidhub/pkg/cli/cmds/frame"
	_ "github.com/robotalks/squidhub/pkg/cli/cmds/hub"
)
