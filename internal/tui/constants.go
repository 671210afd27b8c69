package tui

import "github.com/ensigniasec/countdown/internal/countdown"

// Package-level constants to avoid magic numbers and improve readability.
const (
	countdownTickInterval = countdown.TickInterval

	dateInputWidth = 10
	timeInputWidth = 5

	// progressMaxWidth caps the elapsed bar on wide terminals.
	progressMaxWidth = 60
	progressPadding  = 4

	primaryColor  = "51"  // cyan
	warningColor  = "214" // orange
	dangerColor   = "196" // red
	mutedColor    = "241" // gray
	accentColor   = "69"  // blue
	disabledColor = "240" // dark gray
)
