package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasktracker/internal/api"
	"tasktracker/internal/app"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. It is also what runs when
// tasktracker is invoked without arguments.
type ListCmd struct {
	pendingOnly bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasktracker list [--pending]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.pendingOnly, "pending", false, "")
}

func (c *ListCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	s := a.Tasks.FetchAll(ctx)
	if s.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.BackendError
	}

	if len(s.Tasks) == 0 {
		if !a.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	printSection(out, "Pending", filterTasks(s.Tasks, false))
	if !c.pendingOnly {
		printSection(out, "Completed", filterTasks(s.Tasks, true))
	}

	if !a.Config.Quiet {
		pending, completed := s.Counts()
		output.FormatStats(out, pending, completed)
	}
	return exitcode.Success
}

// printSection writes a header and the tasks. Empty sections are skipped.
func printSection(w io.Writer, title string, tasks []api.Task) {
	if len(tasks) == 0 {
		return
	}
	output.FormatSectionHeader(w, title, len(tasks))
	for _, t := range tasks {
		output.FormatTask(w, t)
	}
}

func filterTasks(all []api.Task, completed bool) []api.Task {
	var out []api.Task
	for _, t := range all {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}
