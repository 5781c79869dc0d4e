package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasktracker/internal/app"
	"tasktracker/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "tasktracker add [--description <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	title, err := validateTitle(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	description, err := validateDescription(c.description)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := a.Tasks.Create(ctx, title, description)
	if s.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		created := s.Tasks[len(s.Tasks)-1]
		fmt.Fprintf(out, "ok (id %d)\n", created.ID)
	}
	return exitcode.Success
}
