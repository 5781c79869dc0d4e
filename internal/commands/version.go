package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktracker/internal/app"
	"tasktracker/internal/exitcode"
)

// Version is overridden at link time: -ldflags "-X tasktracker/internal/commands.Version=...".
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the client version and, unless --quiet, the backends it talks to.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version and configured backends" }
func (c *VersionCmd) Usage() string     { return "tasktracker version" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "tasktracker %s\n", Version)
	if !a.Config.Quiet {
		fmt.Fprintf(out, "api: %s\ncache: %s\n", a.Config.ServerURL, a.Config.Cache)
	}
	return exitcode.Success
}
