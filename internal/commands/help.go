package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. It lists the commands of Registry,
// or of DefaultRegistry when Registry is nil.
type HelpCmd struct {
	Registry *Registry
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskdeck help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	cmds := reg.All()

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  taskdeck                 List the first page of tasks")
	for _, cmd := range cmds {
		fmt.Fprintf(out, "  %s\n", cmd.Usage())
	}

	fmt.Fprintln(out, "\nCommands:")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	for _, cmd := range cmds {
		names := append([]string{cmd.Name()}, cmd.Aliases()...)
		fmt.Fprintf(tw, "  %s\t%s\n", strings.Join(names, ", "), cmd.Synopsis())
	}
	tw.Flush()

	fmt.Fprint(out, flagsHelp)
	return exitcode.Success
}

const flagsHelp = `
Common flags:
  --config <dir>     Override config directory
  --base-url <url>   Override the task service URL
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

List flags (list, done, undo, edit, rm, ui):
  --page <n>         Page to show (default 1)
  --search <text>    Only show tasks whose title contains text
`
