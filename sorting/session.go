package sorting

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// RunState is the lifecycle state of the session:
// Idle -> Running -> {Completed | Cancelled} -> Idle. The run slot is
// released and the outcome recorded in one step, so State reports
// Running until the teardown has fully reconciled the model; the
// outcome states are observable through LastRun.
type RunState int

const (
	Idle RunState = iota
	Running
	Completed
	Cancelled
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("RunState(%d)", int(s))
}

// Session owns the run lifecycle: the is-a-sort-running flag, the
// pre-run snapshot, the cancellation of the background driver and the
// final-state reconciliation (mark-all on success, no claim on
// cancellation). Exactly one driver goroutine is active at a time and
// it is the sole writer of array state while Running.
type Session struct {
	model *Model

	mu        sync.Mutex
	state     RunState
	lastRun   RunState // Completed or Cancelled outcome of the previous run
	snapshot  []int    // pre-run values, nil until a run starts or after randomize
	cancel    context.CancelFunc
	done      chan struct{}
	onRunDone func(cancelled bool)

	delayMs atomic.Int64
}

// NewSession creates a session driving the given model.
func NewSession(m *Model) *Session {
	s := &Session{model: m, state: Idle}
	s.delayMs.Store(1)
	return s
}

// Model returns the array model the session drives.
func (s *Session) Model() *Model { return s.model }

// SetOnRunDone registers the callback fired after a run ends, whether
// completed or cancelled. It runs on the driver goroutine; UI callers
// must hop to the UI thread themselves.
func (s *Session) SetOnRunDone(fn func(cancelled bool)) {
	s.mu.Lock()
	s.onRunDone = fn
	s.mu.Unlock()
}

// SetDelay sets the per-step delay in milliseconds, floored at 1. Safe
// to call mid-run; the scheduler reads it on every step.
func (s *Session) SetDelay(ms int) {
	if ms < 1 {
		ms = 1
	}
	s.delayMs.Store(int64(ms))
}

// DelayMs returns the current per-step delay.
func (s *Session) DelayMs() int { return int(s.delayMs.Load()) }

func (s *Session) delay() time.Duration {
	return time.Duration(s.delayMs.Load()) * time.Millisecond
}

// State returns the current lifecycle state.
func (s *Session) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastRun returns the outcome of the most recent run, Completed or
// Cancelled, or Idle when no run has finished yet.
func (s *Session) LastRun() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// Running reports whether a driver goroutine is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Running
}

// Randomize replaces the values with n uniform integers in [min, max],
// clearing the sorted marks, the highlight and the stored snapshot.
// Rejected while a run is active: an in-flight driver must never see
// the array resized under it.
func (s *Session) Randomize(n, min, max int) error {
	if n <= 0 || min > max {
		return fmt.Errorf("randomize %d values in [%d,%d]: %w", n, min, max, ErrInvalidRange)
	}

	values := make([]int, n)
	for i := range values {
		values[i] = min + rand.IntN(max-min+1)
	}

	s.mu.Lock()
	if s.state == Running {
		s.mu.Unlock()
		return fmt.Errorf("randomize: %w", ErrSortRunning)
	}
	s.snapshot = nil
	s.mu.Unlock()

	s.model.SetValues(values)
	return nil
}

// Start snapshots the current values, transitions to Running and
// launches the algorithm driver on a background goroutine bound to a
// fresh cancellation context. Rejected while a run is active.
func (s *Session) Start(algo Algorithm, delayMs int) error {
	s.mu.Lock()
	if s.state == Running {
		s.mu.Unlock()
		return fmt.Errorf("start %s: %w", algo, ErrSortRunning)
	}
	s.SetDelay(delayMs)
	s.snapshot = s.model.Values()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.state = Running
	s.mu.Unlock()

	s.model.ClearMarks()

	go s.run(ctx, algo, done)
	return nil
}

func (s *Session) run(ctx context.Context, algo Algorithm, done chan struct{}) {
	defer close(done)

	stepper := NewStepper(ctx, s.model, s.delay)
	err := algo.Run(stepper)
	cancelled := err != nil || ctx.Err() != nil

	// Reconcile the model while still Running: this goroutine stays the
	// sole writer until the slot is released, so a concurrently accepted
	// start or randomize can never see a stale mark land on its data.
	// Cancellation never claims anything is sorted; completion claims
	// everything is.
	if cancelled {
		s.model.ClearHighlight()
	} else {
		s.model.MarkAllSorted()
	}

	s.mu.Lock()
	if cancelled {
		s.lastRun = Cancelled
	} else {
		s.lastRun = Completed
	}
	s.cancel = nil
	s.state = Idle
	fn := s.onRunDone
	s.mu.Unlock()

	if fn != nil {
		fn(cancelled)
	}
}

// Stop signals the current run's cancellation token and returns without
// waiting. The driver observes it within one pending delay and unwinds
// by early return; values are left exactly as they are. No-op when not
// Running.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the current run's goroutine has fully unwound.
// Returns immediately when no run was started.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Reset cancels any active run, waits for the driver to unwind, then
// restores the pre-run snapshot if one exists. Without a snapshot it
// only clears the sorted marks and the highlight. Always ends Idle.
func (s *Session) Reset() {
	s.Stop()
	s.Wait()

	s.mu.Lock()
	snap := s.snapshot
	s.mu.Unlock()

	if snap != nil {
		s.model.SetValues(snap)
	} else {
		s.model.ClearMarks()
	}
}
