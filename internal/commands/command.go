// Package commands implements the taskdeck subcommands. List-shaped
// commands drive a listsync.Coordinator and print the page it settles on;
// the rest talk to the task service or the local config directly.
package commands

import (
	"context"
	"flag"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

// Command is one taskdeck subcommand.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis is the one-line description shown in the command table.
	Synopsis() string
	// Usage is the invocation line shown under "Usage:".
	Usage() string

	// NeedsService reports whether the dispatcher must build a task service
	// before Run. When false, Run receives a nil svc.
	NeedsService() bool

	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command against the task service. cfg carries the
	// resolved base URL and page size; args are the positional arguments
	// left after flag parsing. The result is a process exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
