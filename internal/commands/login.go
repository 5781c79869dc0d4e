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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
//
// Without --email the remembered email is used. --remember defaults to
// keeping the email remembered if one already was; --remember=false
// forgets it.
type LoginCmd struct {
	email    string
	password string
	remember optBool
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and cache the session" }
func (c *LoginCmd) Usage() string {
	return "tasktracker login [--email <email>] [--password <password>] [--remember]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	c.remember = optBool{}
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.Var(&c.remember, "remember", "")
}

func (c *LoginCmd) Run(ctx context.Context, a *app.App, args []string, out, errOut io.Writer) int {
	remembered := a.Session.GetRememberedEmail(ctx).RememberedEmail

	email := strings.TrimSpace(c.email)
	if email == "" {
		email = remembered
	}
	if email == "" {
		fmt.Fprintln(errOut, "error: email required (use --email)")
		return exitcode.UserError
	}

	password, err := readPassword(c.password, "Password for "+email)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	s := a.Session.Login(ctx, email, password)
	if !s.IsAuthenticated {
		fmt.Fprintf(errOut, "error: %s\n", s.Error)
		return exitcode.AuthError
	}

	remember := remembered != ""
	if c.remember.set {
		remember = c.remember.value
	}
	if s = a.Session.SetRememberedEmail(ctx, email, remember); s.Error != "" {
		fmt.Fprintf(errOut, "warning: %s\n", s.Error)
	}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "ok (logged in as %s)\n", email)
	}
	return exitcode.Success
}
