package selector

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ensigniasec/countdown/internal/validate"
)

const (
	// DefaultTime is the time of day preselected before the user picks one.
	DefaultTime = "23:59"
	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04"
)

var (
	ErrNoDate      = errors.New("no date selected")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time of day")
)

// Selection holds the transient, unconfirmed choices of the deadline form.
type Selection struct {
	// Date is the chosen calendar day; only its year, month and day are used.
	Date time.Time
	// Time is a 24h "HH:MM" string.
	Time string
}

// New returns an empty selection with defaultTime preselected. An invalid
// defaultTime falls back to DefaultTime.
func New(defaultTime string) Selection {
	if validate.Var(defaultTime, "hhmm") != nil {
		defaultTime = DefaultTime
	}
	return Selection{Time: defaultTime}
}

// FromDeadline prefills a selection from the active deadline, or returns New
// when none is set.
func FromDeadline(deadline time.Time, defaultTime string) Selection {
	if deadline.IsZero() {
		return New(defaultTime)
	}
	return Selection{Date: startOfDay(deadline), Time: deadline.Format(TimeLayout)}
}

// HasDate reports whether a calendar day has been chosen.
func (s Selection) HasDate() bool { return !s.Date.IsZero() }

// CanConfirm reports whether the confirm action is enabled.
func (s Selection) CanConfirm() bool { return s.HasDate() }

// WithDate returns a copy with the calendar day set.
func (s Selection) WithDate(d time.Time) Selection {
	s.Date = startOfDay(d)
	return s
}

// WithTime returns a copy with the time of day set.
func (s Selection) WithTime(hhmm string) Selection {
	s.Time = strings.TrimSpace(hhmm)
	return s
}

// ShiftDays moves the chosen day by n days. Without a date it is a no-op.
func (s Selection) ShiftDays(n int) Selection {
	if !s.HasDate() {
		return s
	}
	s.Date = s.Date.AddDate(0, 0, n)
	return s
}

// Confirm combines the chosen day and time of day into one instant in loc,
// with seconds and sub-second fields zeroed.
func (s Selection) Confirm(loc *time.Location) (time.Time, error) {
	if !s.HasDate() {
		return time.Time{}, ErrNoDate
	}
	if loc == nil {
		loc = time.Local
	}
	if err := validate.Var(s.Time, "hhmm"); err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidTime, s.Time)
	}
	tod, err := time.Parse(TimeLayout, s.Time)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidTime, s.Time, err)
	}
	y, m, d := s.Date.Date()
	return time.Date(y, m, d, tod.Hour(), tod.Minute(), 0, 0, loc), nil
}

// ParseDate parses a "YYYY-MM-DD" calendar day in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if err := validate.Var(value, "required,datetime="+DateLayout); err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, value)
	}
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", ErrInvalidDate, value, err)
	}
	return d, nil
}

// FormatDate renders a calendar day long-form, e.g. "October 19th, 2026".
func FormatDate(d time.Time) string {
	return fmt.Sprintf("%s %d%s, %d", d.Month(), d.Day(), ordinalSuffix(d.Day()), d.Year())
}

// FormatDeadline renders an instant for display, e.g. "October 19th, 2026 at 23:59".
func FormatDeadline(d time.Time) string {
	return FormatDate(d) + " at " + d.Format(TimeLayout)
}

func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
