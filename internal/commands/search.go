package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&SearchCmd{})
}

// SearchCmd implements the search command. The query is matched against
// task titles, case-insensitively.
type SearchCmd struct {
	page int
}

// SetPage sets the page number (for testing).
func (c *SearchCmd) SetPage(page int) { c.page = page }

func (c *SearchCmd) Name() string       { return "search" }
func (c *SearchCmd) Aliases() []string  { return []string{"find"} }
func (c *SearchCmd) Synopsis() string   { return "Search tasks by title" }
func (c *SearchCmd) Usage() string      { return "taskdeck search [--page <n>] <query...>" }
func (c *SearchCmd) NeedsService() bool { return true }

func (c *SearchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 0, "")
	fs.IntVar(&c.page, "p", 0, "")
}

func (c *SearchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		fmt.Fprintln(errOut, "error: search query required")
		return exitcode.UserError
	}

	// Seeding the term and page reads the requested page in one round trip.
	view := viewFlags{page: c.page, search: query}
	coord, ok := view.coordinator(cfg, svc, errOut)
	if !ok {
		return exitcode.UserError
	}
	err := coord.Reload(ctx)
	return finish(cfg, coord, err, false, out, errOut)
}
