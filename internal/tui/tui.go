// Package tui implements the interactive task board.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/listsync"
	"taskdeck/internal/service"
)

// Run starts the task board on the terminal and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, opts listsync.Options) error {
	var p *tea.Program

	// The program owns the terminal; nothing may log to it.
	opts.Logger = nil
	opts.OnChange = func() {
		// Send blocks until the update loop receives; never block the caller.
		go p.Send(stateChangedMsg{})
	}

	coord := listsync.New(svc, opts)
	p = tea.NewProgram(newModel(ctx, coord), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
