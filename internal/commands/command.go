// Package commands implements the tasktracker subcommands. Each command
// turns its arguments into one or more intents against the session
// manager or task store and prints the resulting snapshot.
package commands

import (
	"context"
	"flag"
	"io"

	"tasktracker/internal/app"
)

// Command is a CLI subcommand.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis is the one-line description shown by help.
	Synopsis() string
	Usage() string

	// NeedsAuth reports whether the dispatcher must restore a session
	// before Run. Commands that return true are only run when the cached
	// credentials restore to an authenticated session.
	NeedsAuth() bool

	// RegisterFlags binds command flags. It is called once per dispatch
	// and must reset any state left from a previous run.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional arguments left after
	// flag parsing and returns the process exit code.
	Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int
}
