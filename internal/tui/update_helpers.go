package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/selector"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m, m.confirm()

	case key.Matches(msg, m.keys.Clear):
		if m.deadline.IsZero() {
			return m, nil
		}
		return m, func() tea.Msg { return deadlineClearedMsg{} }

	case key.Matches(msg, m.keys.Today):
		m.setSelection(m.sel.WithDate(m.clock.Now().In(m.loc)))
		return m, nil

	case key.Matches(msg, m.keys.NextDay):
		m.shiftDate(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		m.shiftDate(-1)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % formFieldsCount)
		return m, nil

	case key.Matches(msg, m.keys.Previous):
		m.setFocus((m.focus + formFieldsCount - 1) % formFieldsCount)
		return m, nil
	}

	// Inputs only admit the characters of their layout, like a native date/time control.
	if msg.Type == tea.KeyRunes && !m.acceptsRunes(msg.Runes) {
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

// confirm emits the selection as the new deadline. It does nothing while the
// form cannot be confirmed.
func (m Model) confirm() tea.Cmd {
	if !m.canConfirm() {
		return nil
	}
	deadline, err := m.sel.Confirm(m.loc)
	if err != nil {
		return nil
	}
	return func() tea.Msg { return deadlineConfirmedMsg{Deadline: deadline} }
}

// canConfirm reports whether the START COUNTDOWN action is enabled.
func (m Model) canConfirm() bool {
	if !m.sel.CanConfirm() {
		return false
	}
	_, err := m.sel.Confirm(m.loc)
	return err == nil
}

// setDeadline replaces the active deadline wholesale and restarts the tick chain.
func (m Model) setDeadline(deadline time.Time) (Model, tea.Cmd) {
	if deadline.IsZero() {
		m.clearDeadline()
		return m, nil
	}
	now := m.clock.Now()
	m.deadline = deadline
	m.setAt = now
	m.tickID = uuid.NewString()
	m.snap = countdown.Evaluate(deadline, now)
	m.setSelection(selector.FromDeadline(deadline, m.settings.DefaultTime))
	logrus.Debugf("deadline set to %s (%s)", deadline.Format(time.RFC3339), m.snap.State)

	if m.snap.State != countdown.StateCounting {
		return m, nil
	}
	return m, m.tickCountdown(m.tickID)
}

// clearDeadline returns the renderer to idle; outstanding ticks become stale.
func (m *Model) clearDeadline() {
	m.deadline = time.Time{}
	m.setAt = time.Time{}
	m.tickID = ""
	m.snap = countdown.Evaluate(time.Time{}, m.clock.Now())
	logrus.Debug("deadline cleared")
}

func (m *Model) shiftDate(days int) {
	if m.focus != fieldDate {
		return
	}
	if !m.sel.HasDate() {
		m.setSelection(m.sel.WithDate(m.clock.Now().In(m.loc)))
		return
	}
	m.setSelection(m.sel.ShiftDays(days))
}

func (m *Model) setFocus(f formField) {
	m.focus = f
	m.dateInput.Blur()
	m.timeInput.Blur()
	if f == fieldDate {
		m.dateInput.Focus()
	} else {
		m.timeInput.Focus()
	}
}

// setSelection replaces the form selection and mirrors it into the inputs.
func (m *Model) setSelection(sel selector.Selection) {
	m.sel = sel
	if sel.HasDate() {
		m.dateInput.SetValue(sel.Date.Format(selector.DateLayout))
	} else {
		m.dateInput.SetValue("")
	}
	m.timeInput.SetValue(sel.Time)
}

// syncSelection rebuilds the selection from the raw input values.
func (m *Model) syncSelection() {
	if d, err := selector.ParseDate(m.dateInput.Value(), m.loc); err == nil {
		m.sel = m.sel.WithDate(d)
	} else {
		m.sel.Date = time.Time{}
	}
	m.sel = m.sel.WithTime(m.timeInput.Value())
}

func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == fieldDate {
		m.dateInput, cmd = m.dateInput.Update(msg)
	} else {
		m.timeInput, cmd = m.timeInput.Update(msg)
	}
	m.syncSelection()
	return m, cmd
}

func (m Model) acceptsRunes(runes []rune) bool {
	allowed := "0123456789-"
	if m.focus == fieldTime {
		allowed = "0123456789:"
	}
	for _, r := range runes {
		if !strings.ContainsRune(allowed, r) {
			return false
		}
	}
	return true
}
