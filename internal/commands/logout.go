package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd deletes the bearer token written by login. Later requests to
// the task service go out without an Authorization header.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Remove the stored token" }
func (c *LogoutCmd) Usage() string      { return "taskdeck logout [common flags]" }
func (c *LogoutCmd) NeedsService() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return unexpectedArg(args[0], errOut)
	}

	var err error
	if cfg.HasToken() {
		err = cfg.RemoveToken()
	} else {
		err = fs.ErrNotExist
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.say(cfg, out, "not logged in")
		return exitcode.Success
	case err != nil:
		fmt.Fprintf(errOut, "error: failed to remove token: %v\n", err)
		return exitcode.AuthError
	}

	c.say(cfg, out, "ok")
	return exitcode.Success
}

func (c *LogoutCmd) say(cfg *config.Config, out io.Writer, msg string) {
	if !cfg.Quiet {
		fmt.Fprintln(out, msg)
	}
}
