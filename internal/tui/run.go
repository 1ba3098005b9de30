package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luke-tf/finanapp/internal/container"
)

// Run starts the terminal UI over an already-running container and
// blocks until the user quits or ctx is canceled.
func Run(ctx context.Context, c *container.Container) error {
	program := tea.NewProgram(New(c), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
