package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tasktracker/internal/app"
	"tasktracker/internal/commands"
	"tasktracker/internal/config"
	"tasktracker/internal/exitcode"
	"tasktracker/internal/logger"
)

// defaultCommand runs when no arguments are given.
const defaultCommand = "list"

// AppBuilder assembles the client core for a parsed config.
type AppBuilder func(cfg *config.Config, log *slog.Logger) (*app.App, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	build    AppBuilder
}

// NewDispatcher creates a dispatcher over registry. A nil build uses
// app.New with the backends selected by the config.
func NewDispatcher(registry *commands.Registry, build AppBuilder) *Dispatcher {
	if build == nil {
		build = func(cfg *config.Config, log *slog.Logger) (*app.App, error) {
			return app.New(cfg, log)
		}
	}
	return &Dispatcher{registry: registry, build: build}
}

// Run parses args, dispatches to a command and returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	name := defaultCommand
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	// Flags are only accepted after the command name.
	if strings.HasPrefix(name, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(name)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatch(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configDir string
		serverURL string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&serverURL, "server", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}

	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") && positional[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if serverURL != "" {
		cfg.ServerURL = strings.TrimRight(serverURL, "/")
	}

	log := logger.New(errOut, debug)
	a, err := d.build(cfg, log)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("failed to close", slog.String("error", err.Error()))
		}
	}()

	if cmd.NeedsAuth() {
		if s := a.Session.RestoreSession(ctx); !s.IsAuthenticated {
			fmt.Fprintln(errOut, "error: not logged in (run: tasktracker login)")
			return exitcode.AuthError
		}
	}

	log.Debug("running command", slog.String("command", cmd.Name()), slog.Int("args", len(positional)))
	return cmd.Run(ctx, a, positional, out, errOut)
}

// flagError rewrites flag package errors into the CLI's message style.
func flagError(err error) string {
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return msg
}
