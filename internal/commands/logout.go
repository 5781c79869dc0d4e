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
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command. The remembered email is kept.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove the cached session" }
func (c *LogoutCmd) Usage() string     { return "tasktracker logout" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if !a.Session.RestoreSession(ctx).IsAuthenticated {
		if !a.Config.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	s := a.Session.Logout(ctx)
	if s.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.AuthError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
