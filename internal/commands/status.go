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
	Register(&StatusCmd{})
}

// StatusCmd prints the restored session without contacting the server.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"whoami"} }
func (c *StatusCmd) Synopsis() string  { return "Show the cached session" }
func (c *StatusCmd) Usage() string     { return "tasktracker status" }
func (c *StatusCmd) NeedsAuth() bool   { return false }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	a.Session.RestoreSession(ctx)
	s := a.Session.GetRememberedEmail(ctx)

	fmt.Fprintf(out, "status: %s\n", s.Status())
	if s.IsAuthenticated {
		fmt.Fprintf(out, "user: %s\n", s.UserID)
	}
	if s.RememberedEmail != "" {
		fmt.Fprintf(out, "remembered email: %s\n", s.RememberedEmail)
	}
	fmt.Fprintf(out, "server: %s\n", a.Config.ServerURL)
	return exitcode.Success
}
