package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"cuemark/internal/cli"
	"cuemark/internal/lock"
	"cuemark/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Whole-collection persistence makes concurrent instances unsafe.
	l, err := lock.Acquire(lockDir(ctx))
	if err != nil {
		return err
	}
	defer l.Release()

	m := tui.NewModel(ctx.Store)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
