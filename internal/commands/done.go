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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles completion, so running
// it on a completed task reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task between pending and completed" }
func (c *DoneCmd) Usage() string     { return "tasktracker done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, s, ok := lookupTask(ctx, a.Tasks, id)
	if s.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.BackendError
	}
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}

	s = a.Tasks.ToggleComplete(ctx, task.ID, task.Title, task.Description, task.Completed)
	if s.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		if updated, found := s.Find(id); found && updated.Completed {
			fmt.Fprintln(out, "ok (completed)")
		} else {
			fmt.Fprintln(out, "ok (pending)")
		}
	}
	return exitcode.Success
}
