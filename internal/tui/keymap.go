package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines global key bindings used across the TUI.
type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Confirm  key.Binding
	Clear    key.Binding
	Today    key.Binding
	NextDay  key.Binding
	PrevDay  key.Binding
	Next     key.Binding
	Previous key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start countdown"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear deadline"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "pick today"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "next day"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "previous day"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Previous: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
	}
}

// helpBindings lists the bindings shown in the help box, in display order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Next, k.Today, k.NextDay, k.PrevDay, k.Confirm, k.Clear, k.Help, k.Quit}
}
