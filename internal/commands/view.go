package commands

import (
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/listsync"
	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

// viewFlags select the page a command shows: --page and --search.
// A page of 0 means unset and shows page 1.
type viewFlags struct {
	page   int
	search string
}

func (f *viewFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&f.page, "page", 0, "")
	fs.IntVar(&f.page, "p", 0, "")
	fs.StringVar(&f.search, "search", "", "")
	fs.StringVar(&f.search, "s", "", "")
}

// SetPage sets the page number (for testing).
func (f *viewFlags) SetPage(page int) { f.page = page }

// SetSearch sets the search term (for testing).
func (f *viewFlags) SetSearch(term string) { f.search = term }

// coordinator builds a list state seeded with the selected page and term.
func (f *viewFlags) coordinator(cfg *config.Config, svc service.Service, errOut io.Writer) (*listsync.Coordinator, bool) {
	if f.page < 0 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", f.page)
		return nil, false
	}
	return listsync.New(svc, listsync.Options{
		PageSize:   cfg.PageSize,
		Page:       f.page,
		SearchTerm: f.search,
		Logger:     cfg.Logger(),
	}), true
}

// finish reports the outcome of an operation: the error on errOut, or the
// resulting page on out. Quiet suppresses the page after a mutation.
func finish(cfg *config.Config, c *listsync.Coordinator, err error, mutation bool, out, errOut io.Writer) int {
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", service.Message(err))
		return exitcode.ForError(err)
	}
	if mutation && cfg.Quiet {
		return exitcode.Success
	}
	output.FormatPage(out, c.Snapshot())
	return exitcode.Success
}

func unexpectedArg(arg string, errOut io.Writer) int {
	fmt.Fprintf(errOut, "error: unexpected argument: %s\n", arg)
	return exitcode.UserError
}
