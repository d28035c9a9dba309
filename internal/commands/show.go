package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return []string{"get"} }
func (c *ShowCmd) Synopsis() string   { return "Print one task" }
func (c *ShowCmd) Usage() string      { return "taskdeck show <id>" }
func (c *ShowCmd) NeedsService() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", service.Message(err))
		return exitcode.ForError(err)
	}
	output.FormatDetail(out, task)
	return exitcode.Success
}
