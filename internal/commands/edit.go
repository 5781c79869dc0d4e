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
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields not given on the command
// line keep their current server values.
type EditCmd struct {
	title       optString
	description optString
	completed   optBool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's title, description or status" }
func (c *EditCmd) Usage() string {
	return "tasktracker edit [--title <t>] [--description <d>] [--completed=true|false] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = optString{}
	c.description = optString{}
	c.completed = optBool{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
	fs.Var(&c.completed, "completed", "")
}

func (c *EditCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.description.set && !c.completed.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --description or --completed)")
		return exitcode.UserError
	}

	title := c.title.value
	if c.title.set {
		if title, err = validateTitle(title); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	description := c.description.value
	if c.description.set {
		if description, err = validateDescription(description); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
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

	if c.title.set {
		task.Title = title
	}
	if c.description.set {
		task.Description = description
	}
	if c.completed.set {
		task.Completed = c.completed.value
	}

	s = a.Tasks.Update(ctx, task.ID, task.Title, task.Description, task.Completed)
	if s.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.BackendError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
