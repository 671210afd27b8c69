package countdown

import (
	"encoding/json"
	"time"
)

// State is the renderer lifecycle for a single deadline.
type State int

const (
	StateIdle State = iota
	StateCounting
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCounting:
		return "counting"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the state by name.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Clock is the wall-clock source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Snapshot is the derived render state at one instant.
type Snapshot struct {
	State     State     `json:"state"`
	Deadline  time.Time `json:"deadline,omitzero"`
	At        time.Time `json:"at"`
	Remaining Remaining `json:"-"`
	Urgency   Urgency   `json:"urgency"`
}

// Evaluate derives the snapshot for deadline at now. A zero deadline is Idle.
func Evaluate(deadline, now time.Time) Snapshot {
	if deadline.IsZero() {
		return Snapshot{State: StateIdle, At: now}
	}
	r := Compute(deadline, now)
	s := Snapshot{
		State:     StateCounting,
		Deadline:  deadline,
		At:        now,
		Remaining: r,
		Urgency:   r.Urgency(),
	}
	if r.Expired() {
		s.State = StateExpired
	}
	return s
}

// MarshalJSON flattens the remaining breakdown alongside the state.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type alias Snapshot
	return json.Marshal(struct {
		alias
		Days    int   `json:"days"`
		Hours   int   `json:"hours"`
		Minutes int   `json:"minutes"`
		Seconds int   `json:"seconds"`
		TotalMS int64 `json:"total_ms"`
	}{
		alias:   alias(s),
		Days:    s.Remaining.Days,
		Hours:   s.Remaining.Hours,
		Minutes: s.Remaining.Minutes,
		Seconds: s.Remaining.Seconds,
		TotalMS: s.Remaining.Total.Milliseconds(),
	})
}
