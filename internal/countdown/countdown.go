package countdown

import (
	"fmt"
	"strings"
	"time"
)

// Decomposition units. Calendar-agnostic: a day is always 24h.
const (
	Day    = 24 * time.Hour
	Hour   = time.Hour
	Minute = time.Minute
	Second = time.Second

	// CriticalThreshold and UrgentThreshold bound the urgency bands.
	CriticalThreshold = 10 * time.Minute
	UrgentThreshold   = time.Hour
)

// Remaining is the breakdown of time left until a deadline.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	// Total is the exact time left, clamped to zero once the deadline passes.
	Total time.Duration
}

// Compute returns the time left between now and deadline.
// A deadline at or before now yields the zero Remaining.
func Compute(deadline, now time.Time) Remaining {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return Remaining{}
	}
	return Remaining{
		Days:    int(diff / Day),
		Hours:   int((diff % Day) / Hour),
		Minutes: int((diff % Hour) / Minute),
		Seconds: int((diff % Minute) / Second),
		Total:   diff,
	}
}

// Expired reports whether nothing is left.
func (r Remaining) Expired() bool { return r.Total <= 0 }

// Urgency classifies r.Total.
func (r Remaining) Urgency() Urgency { return Classify(r.Total) }

// Field is one labelled, zero-padded unit of the breakdown.
type Field struct {
	Value string
	Label string
}

// Fields returns the rendered breakdown. Days are omitted entirely when zero.
func (r Remaining) Fields() []Field {
	fields := make([]Field, 0, 4) //nolint:mnd // days, hours, minutes, seconds
	if r.Days > 0 {
		fields = append(fields, Field{Value: Pad2(r.Days), Label: "DAYS"})
	}
	return append(fields,
		Field{Value: Pad2(r.Hours), Label: "HOURS"},
		Field{Value: Pad2(r.Minutes), Label: "MIN"},
		Field{Value: Pad2(r.Seconds), Label: "SEC"},
	)
}

// String renders the breakdown as colon-separated padded fields, e.g. "01:01:01:01".
func (r Remaining) String() string {
	fields := r.Fields()
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		values = append(values, f.Value)
	}
	return strings.Join(values, ":")
}

// Pad2 zero-pads n to at least two digits.
func Pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}
