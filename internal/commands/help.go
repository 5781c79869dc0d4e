package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktracker/internal/app"
	"tasktracker/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasktracker help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasktracker                                        List tasks
  tasktracker list [common flags] [--pending]
  tasktracker add [common flags] [--description <text>] <title...>
  tasktracker edit [common flags] [--title <t>] [--description <d>] [--completed=true|false] <id>
  tasktracker done [common flags] <id>               Toggle completion
  tasktracker rm [common flags] <id>
  tasktracker signup [common flags] --username <name> --email <email> [--password <pw>]
  tasktracker login [common flags] [--email <email>] [--password <pw>] [--remember]
  tasktracker logout [common flags]
  tasktracker status [common flags]
  tasktracker help
  tasktracker version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override the API base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
