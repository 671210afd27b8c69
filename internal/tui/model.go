package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/selector"
)

// formField identifies the focused selector input.
type formField int

const (
	fieldDate formField = iota
	fieldTime
	formFieldsCount
)

// Model is the root Bubble Tea model. It owns the active deadline and wires
// the selector form into the countdown renderer.
type Model struct {
	settings config.Settings
	clock    countdown.Clock
	loc      *time.Location

	// active deadline; zero when none is set
	deadline time.Time
	setAt    time.Time
	tickID   string
	snap     countdown.Snapshot
	// initial is confirmed on Init when non-zero.
	initial time.Time

	// selector form state
	sel       selector.Selection
	dateInput textinput.Model
	timeInput textinput.Model
	focus     formField

	progress progress.Model
	width    int
	height   int
	quitting bool

	// ui state
	helpVisible bool

	// keymap for consistent keybindings
	keys keyMap
}

// NewModel constructs a Model with no active deadline and sel prefilled in
// the form. A nil clock uses the system clock.
func NewModel(settings config.Settings, clock countdown.Clock, sel selector.Selection) Model {
	if clock == nil {
		clock = countdown.SystemClock{}
	}

	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD"
	di.CharLimit = len(selector.DateLayout)
	di.Width = dateInputWidth

	ti := textinput.New()
	ti.Placeholder = "HH:MM"
	ti.CharLimit = len(selector.TimeLayout)
	ti.Width = timeInputWidth

	m := Model{
		settings:  settings,
		clock:     clock,
		loc:       time.Local,
		snap:      countdown.Evaluate(time.Time{}, clock.Now()),
		dateInput: di,
		timeInput: ti,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		keys:      newKeyMap(),
	}
	m.setSelection(sel)
	m.dateInput.Focus()
	return m
}

// WithDeadline returns a copy that confirms deadline as soon as it starts.
func (m Model) WithDeadline(deadline time.Time) Model {
	m.initial = deadline
	return m
}

// WithLocation sets the location confirmed deadlines are built in.
func (m Model) WithLocation(loc *time.Location) Model {
	if loc != nil {
		m.loc = loc
	}
	return m
}

// Deadline returns the active deadline, zero when none is set.
func (m Model) Deadline() time.Time { return m.deadline }

// Snapshot returns the most recently computed render state.
func (m Model) Snapshot() countdown.Snapshot { return m.snap }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if !m.initial.IsZero() {
		initial := m.initial
		cmds = append(cmds, func() tea.Msg { return deadlineConfirmedMsg{Deadline: initial} })
	}
	return tea.Batch(cmds...)
}

// tickCountdown schedules the next countdown tick for the deadline identified by id.
func (m Model) tickCountdown(id string) tea.Cmd {
	return tea.Tick(countdownTickInterval, func(t time.Time) tea.Msg {
		return tickCountdownMsg{ID: id, At: t}
	})
}
