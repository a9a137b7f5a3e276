package sorting

import (
	"context"
	"time"
)

// DelayFunc returns the pacing delay for the next step. It is called on
// every pause so a UI speed slider is picked up mid-run without any
// explicit apply step. A non-positive delay skips the sleep but keeps
// the cancellation checks, which is how headless tests run at full
// speed.
type DelayFunc func() time.Duration

// StepKind identifies an observable algorithm step.
type StepKind int

const (
	StepHighlight StepKind = iota
	StepSwap
	StepWrite
	StepMarkSorted
)

// Step is one observable algorithmic action. Tests attach an observer
// to record the exact step trace of a run.
type Step struct {
	Kind  StepKind
	I, J  int
	Value int // written value, StepWrite only
}

// Stepper is the step scheduler: the only channel through which an
// algorithm driver touches the model. Each step applies its mutation,
// notifies the renderer through the model and pauses for the current
// delay. Cancellation is checked before a mutation is applied and on
// both sides of every pause, so a stop request is observed within one
// pending delay and never corrupts state.
type Stepper struct {
	ctx    context.Context
	model  *Model
	delay  DelayFunc
	onStep func(Step)
}

// NewStepper binds a scheduler to a model, a cancellation context and a
// live delay source.
func NewStepper(ctx context.Context, m *Model, delay DelayFunc) *Stepper {
	return &Stepper{ctx: ctx, model: m, delay: delay}
}

// SetOnStep registers an observer invoked after each applied step.
func (s *Stepper) SetOnStep(fn func(Step)) { s.onStep = fn }

func (s *Stepper) emit(step Step) {
	if s.onStep != nil {
		s.onStep(step)
	}
}

// Err returns the cancellation state of the run.
func (s *Stepper) Err() error { return s.ctx.Err() }

// Pause suspends the driver for the current delay. It returns the
// context error if the run is already cancelled, and re-checks after
// waking so a single pause observes two decision points.
func (s *Stepper) Pause() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	if d := s.delay(); d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-s.ctx.Done():
		}
	}
	return s.ctx.Err()
}

// Highlight marks i and j as under comparison and pauses. Skipped
// silently when already cancelled; a lost highlight never corrupts
// state.
func (s *Stepper) Highlight(i, j int) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	s.model.SetHighlight(i, j)
	s.emit(Step{Kind: StepHighlight, I: i, J: j})
	return s.Pause()
}

// ClearHighlight removes the highlight without pausing.
func (s *Stepper) ClearHighlight() {
	if s.ctx.Err() != nil {
		return
	}
	s.model.ClearHighlight()
}

// Value reads the model value at i.
func (s *Stepper) Value(i int) int { return s.model.Value(i) }

// Len returns the model length.
func (s *Stepper) Len() int { return s.model.Len() }

// Swap exchanges two values, repaints and pauses. Not applied when the
// run is already cancelled.
func (s *Stepper) Swap(i, j int) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	if err := s.model.Swap(i, j); err != nil {
		return err
	}
	s.emit(Step{Kind: StepSwap, I: i, J: j})
	return s.Pause()
}

// Write stores v at index i, repaints and pauses. Not applied when the
// run is already cancelled.
func (s *Stepper) Write(i, v int) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	if err := s.model.SetValue(i, v); err != nil {
		return err
	}
	s.emit(Step{Kind: StepWrite, I: i, Value: v})
	return s.Pause()
}

// MarkSorted confirms index i as finally placed. Not applied when the
// run is already cancelled. Does not pause: confirmations ride on the
// pacing of the surrounding compare/swap steps.
func (s *Stepper) MarkSorted(i int) error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	if err := s.model.MarkSorted(i); err != nil {
		return err
	}
	s.emit(Step{Kind: StepMarkSorted, I: i})
	return nil
}
