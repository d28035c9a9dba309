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
	Register(&DoneCmd{done: true})
	Register(&DoneCmd{done: false})
}

// DoneCmd implements the done and undo commands.
type DoneCmd struct {
	viewFlags
	done bool
}

// NewDoneCmd returns the done command, or undo when done is false.
func NewDoneCmd(done bool) *DoneCmd {
	return &DoneCmd{done: done}
}

func (c *DoneCmd) Name() string {
	if c.done {
		return "done"
	}
	return "undo"
}

func (c *DoneCmd) Aliases() []string {
	if c.done {
		return []string{"complete"}
	}
	return []string{"reopen"}
}

func (c *DoneCmd) Synopsis() string {
	if c.done {
		return "Mark a task done"
	}
	return "Mark a task open again"
}

func (c *DoneCmd) Usage() string {
	return "taskdeck " + c.Name() + " [--page <n>] [--search <text>] <id>"
}

func (c *DoneCmd) NeedsService() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	c.viewFlags.register(fs)
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	coord, ok := c.coordinator(cfg, svc, errOut)
	if !ok {
		return exitcode.UserError
	}
	err := coord.SetDone(ctx, id, c.done)
	return finish(cfg, coord, err, true, out, errOut)
}
