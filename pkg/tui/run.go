package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roastedbeans/xylvir-assets-manager/pkg/events"
)

// Run показывает прогресс-экран, пока канал sub не закроется
// или пользователь не выйдет.
//
// Правило 11: отмена ctx завершает программу.
func Run(ctx context.Context, sub events.Subscriber, opts ...Option) error {
	p := tea.NewProgram(NewModel(sub, opts...), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
