package tui

import "time"

// Message types for Bubble Tea update loop.

// tickCountdownMsg fires every second while a deadline is counting down.
// ID ties the tick to the deadline that scheduled it.
type tickCountdownMsg struct {
	ID string
	At time.Time
}

// deadlineConfirmedMsg carries a confirmed instant from the selector to the container.
type deadlineConfirmedMsg struct{ Deadline time.Time }

// deadlineClearedMsg drops the active deadline.
type deadlineClearedMsg struct{}
