package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskui/internal/config"
	"taskui/internal/exitcode"
	"taskui/internal/service"
	"taskui/internal/taskview"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// The task is fetched, put into edit mode, and the given fields replace the
// form values before submitting. The status is sent back unchanged.
type EditCmd struct {
	title       optionalString
	description optionalString
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	_ = c.title.Set(title)
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(d string) {
	_ = c.description.Set(d)
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return []string{"update"} }
func (c *EditCmd) Synopsis() string   { return "Change a task's title or description" }
func (c *EditCmd) Usage() string      { return "taskui edit [--title <t>] [--description <d>] <id>" }
func (c *EditCmd) NeedsService() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = optionalString{}
	c.description = optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.description.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --description)")
		return exitcode.UserError
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return reportBackendError(errOut, id, err)
	}

	view := taskview.New(svc, cfg.Logger())
	view.Edit(task)
	if c.title.set {
		view.SetTitle(c.title.value)
	}
	if c.description.set {
		view.SetDescription(c.description.value)
	}
	if err := view.Submit(ctx); err != nil {
		return reportBackendError(errOut, id, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
