package commands

import (
	"context"
	"flag"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	viewFlags
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskdeck rm [--page <n>] [--search <text>] <id>" }
func (c *RmCmd) NeedsService() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	c.viewFlags.register(fs)
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	coord, ok := c.coordinator(cfg, svc, errOut)
	if !ok {
		return exitcode.UserError
	}

	// The page after a delete is predicted from the total before it.
	if err := coord.Reload(ctx); err != nil {
		return finish(cfg, coord, err, true, out, errOut)
	}
	err := coord.Delete(ctx, id)
	return finish(cfg, coord, err, true, out, errOut)
}
