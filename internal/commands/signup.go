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
	Register(&SignupCmd{})
}

// SignupCmd implements the signup command. A new account is not logged in.
type SignupCmd struct {
	username string
	email    string
	password string
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account" }
func (c *SignupCmd) Usage() string {
	return "tasktracker signup --username <name> --email <email> [--password <password>]"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.username, "username", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	username := strings.TrimSpace(c.username)
	email := strings.TrimSpace(c.email)
	if username == "" {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}
	if email == "" {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}

	password, err := readPassword(c.password, "Choose a password")
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := a.Session.Signup(ctx, username, email, password)
	if s.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.AuthError
	}

	if !a.Config.Quiet {
		fmt.Fprintln(out, "ok (now run: tasktracker login)")
	}
	return exitcode.Success
}
