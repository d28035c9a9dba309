package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/listsync"
	"taskdeck/internal/service"
	"taskdeck/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive task board.
type UICmd struct {
	viewFlags
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive task board" }
func (c *UICmd) Usage() string      { return "taskdeck ui [--page <n>] [--search <text>]" }
func (c *UICmd) NeedsService() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {
	c.viewFlags.register(fs)
}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return unexpectedArg(args[0], errOut)
	}
	if c.page < 0 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}

	opts := listsync.Options{
		PageSize:   cfg.PageSize,
		Page:       c.page,
		SearchTerm: c.search,
		Logger:     cfg.Logger(),
	}
	if err := tui.Run(ctx, svc, opts); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
