package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TickInterval is the nominal recomputation cadence.
const TickInterval = time.Second

// Runner recomputes the snapshot of one active deadline on a fixed cadence and
// hands each result to an emit callback. Replacing or clearing the deadline
// cancels the running task before the call returns.
//
// emit is invoked with the Runner's lock held and must not call back into it.
type Runner struct {
	clock    Clock
	interval time.Duration
	emit     func(Snapshot)

	mu       sync.Mutex
	gen      uint64
	deadline time.Time
	cancel   context.CancelFunc
	done     chan struct{}
	stopped  bool
}

// NewRunner constructs an idle Runner. A nil clock uses SystemClock and a
// non-positive interval uses TickInterval.
func NewRunner(clock Clock, interval time.Duration, emit func(Snapshot)) *Runner {
	if clock == nil {
		clock = SystemClock{}
	}
	if interval <= 0 {
		interval = TickInterval
	}
	if emit == nil {
		emit = func(Snapshot) {}
	}
	return &Runner{clock: clock, interval: interval, emit: emit}
}

// Deadline returns the active deadline, zero when none is set.
func (r *Runner) Deadline() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deadline
}

// Set replaces the active deadline. The first snapshot for the new value is
// emitted before Set returns; no snapshot for the previous value follows it.
func (r *Runner) Set(deadline time.Time) {
	if deadline.IsZero() {
		r.Clear()
		return
	}

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	prev := r.cancelLocked()
	r.deadline = deadline
	snap := Evaluate(deadline, r.clock.Now())
	r.emit(snap)
	if snap.State == StateCounting {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		r.cancel, r.done = cancel, done
		go r.loop(ctx, r.gen, deadline, done)
	}
	r.mu.Unlock()

	logrus.Debugf("countdown: deadline set to %s (%s)", deadline.Format(time.RFC3339), snap.State)
	wait(prev)
}

// Clear drops the active deadline, emits an idle snapshot and halts ticking.
func (r *Runner) Clear() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	prev := r.cancelLocked()
	r.deadline = time.Time{}
	r.emit(Evaluate(time.Time{}, r.clock.Now()))
	r.mu.Unlock()

	logrus.Debug("countdown: deadline cleared")
	wait(prev)
}

// Stop tears the Runner down. Later calls to Set and Clear are no-ops.
func (r *Runner) Stop() {
	r.mu.Lock()
	prev := r.cancelLocked()
	r.stopped = true
	r.mu.Unlock()
	wait(prev)
}

// cancelLocked invalidates the running task and returns its completion channel.
func (r *Runner) cancelLocked() chan struct{} {
	r.gen++
	if r.cancel != nil {
		r.cancel()
	}
	prev := r.done
	r.cancel, r.done = nil, nil
	return prev
}

func (r *Runner) loop(ctx context.Context, gen uint64, deadline time.Time, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		r.mu.Lock()
		if r.gen != gen {
			r.mu.Unlock()
			return
		}
		snap := Evaluate(deadline, r.clock.Now())
		r.emit(snap)
		r.mu.Unlock()

		// Expired is terminal for this deadline; nothing left to recompute.
		if snap.State == StateExpired {
			logrus.Debugf("countdown: deadline %s reached", deadline.Format(time.RFC3339))
			return
		}
	}
}

func wait(done chan struct{}) {
	if done != nil {
		<-done
	}
}
