package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/countdown"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.progress.Width = progressWidth(x.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(x)

	case tickCountdownMsg:
		// A tick scheduled for a replaced or cleared deadline is dropped and
		// not rescheduled, so at most one tick chain is ever live.
		if x.ID != m.tickID || m.deadline.IsZero() {
			return m, nil
		}
		m.snap = countdown.Evaluate(m.deadline, m.clock.Now())
		if m.snap.State == countdown.StateCounting {
			return m, m.tickCountdown(m.tickID)
		}
		return m, nil

	case deadlineConfirmedMsg:
		return m.setDeadline(x.Deadline)

	case deadlineClearedMsg:
		m.clearDeadline()
		return m, nil
	}

	// Anything else (cursor blink) belongs to the focused input.
	var cmd tea.Cmd
	m, cmd = m.updateFocusedInput(msg)
	return m, cmd
}

func progressWidth(termWidth int) int {
	w := termWidth - progressPadding
	if w > progressMaxWidth {
		w = progressMaxWidth
	}
	if w < 1 {
		w = 1
	}
	return w
}
