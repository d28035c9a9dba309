// Command taskdeck lists and edits tasks held by a remote task service,
// either one command at a time or through an interactive board (taskdeck ui).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskdeck/internal/backend/httpapi"
	"taskdeck/internal/cli"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

// newService builds the HTTP task service for commands that need one.
func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	return httpapi.New(ctx, cfg)
}

func main() {
	// In-flight requests and the board both stop on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.NewDispatcher(commands.DefaultRegistry, newService).
		Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
