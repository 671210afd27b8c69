package tui

import (
	"context"
	"errors"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/selector"
)

// Options configures the interactive program.
type Options struct {
	Settings config.Settings
	// Selection prefills the form.
	Selection selector.Selection
	// Start confirms Selection immediately when it has a date.
	Start bool
}

// Run starts the Bubble Tea TUI program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(opts.Settings, countdown.SystemClock{}, opts.Selection)
	if opts.Start {
		deadline, err := opts.Selection.Confirm(time.Local)
		if err != nil {
			return err
		}
		model = model.WithDeadline(deadline)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Silence external logs (WARN/ERRO) during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	// Run TUI blocking in this goroutine.
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
