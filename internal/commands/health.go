package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&HealthCmd{})
}

// HealthCmd implements the health command.
type HealthCmd struct{}

func (c *HealthCmd) Name() string       { return "health" }
func (c *HealthCmd) Aliases() []string  { return []string{"ping"} }
func (c *HealthCmd) Synopsis() string   { return "Check that the task service is up" }
func (c *HealthCmd) Usage() string      { return "taskdeck health" }
func (c *HealthCmd) NeedsService() bool { return true }

func (c *HealthCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HealthCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := svc.Health(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", service.Message(err))
		return exitcode.ForError(err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "ok %s\n", cfg.BaseURL)
	}
	return exitcode.Success
}
