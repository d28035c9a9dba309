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
	Register(&EditCmd{})
}

// optString is a string flag that records whether it was given, so an
// explicit empty value can be told apart from an omitted flag.
type optString struct {
	value string
	set   bool
}

func (o *optString) String() string { return o.value }

func (o *optString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	viewFlags
	title       optString
	description optString
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(t string) { _ = c.title.Set(t) }

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(d string) { _ = c.description.Set(d) }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *EditCmd) Usage() string {
	return "taskdeck edit [--title <text>] [--desc <text>] <id>"
}
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.viewFlags.register(fs)
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "desc", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskIDArg(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if !c.title.set && !c.description.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --desc)")
		return exitcode.UserError
	}

	coord, ok := c.coordinator(cfg, svc, errOut)
	if !ok {
		return exitcode.UserError
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return finish(cfg, coord, err, true, out, errOut)
	}

	coord.OpenEdit(task)
	draft, _ := coord.Draft()
	if c.title.set {
		draft.Title = c.title.value
	}
	if c.description.set {
		draft.Description = c.description.value
	}
	if err := coord.UpdateDraft(draft.Title, draft.Description); err != nil {
		return finish(cfg, coord, err, true, out, errOut)
	}

	err = coord.SaveEdit(ctx)
	return finish(cfg, coord, err, true, out, errOut)
}
