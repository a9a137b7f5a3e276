// Package sorting contains the animated sorting engine: the array model
// read by the renderer, the step scheduler that paces and cancels
// algorithm steps, the three algorithm drivers and the session that
// owns the run lifecycle.
//
// Maintenance notes:
//   - Mutable model fields (values, sorted marks, highlight) are read
//     by the UI goroutine and written by the run goroutine. All access
//     goes through the methods below, which take the model mutex; do
//     not add fields that bypass it.
//   - The change notification runs outside the lock so the callback may
//     call Snapshot without deadlocking. Keep it that way.
package sorting

import "sync"

const noHighlight = -1

// Model is the single source of truth the renderer reads: the value
// sequence, the per-index confirmed-sorted marks and the pair of
// indices currently under comparison or swap.
type Model struct {
	mu       sync.RWMutex
	values   []int
	sorted   []bool
	hiA, hiB int
	onChange func()
}

// NewModel returns an empty model with no highlight.
func NewModel() *Model {
	return &Model{hiA: noHighlight, hiB: noHighlight}
}

// SetOnChange registers the callback invoked after every mutation.
// Pass nil to disable. The callback must not mutate the model.
func (m *Model) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

func (m *Model) notify() {
	m.mu.RLock()
	fn := m.onChange
	m.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// SetValues replaces the value sequence and clears the sorted marks and
// the highlight. Used by randomize and reset.
func (m *Model) SetValues(values []int) {
	m.mu.Lock()
	m.values = append([]int(nil), values...)
	m.sorted = make([]bool, len(values))
	m.hiA, m.hiB = noHighlight, noHighlight
	m.mu.Unlock()
	m.notify()
}

// Len returns the number of values.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// Value returns the value at index i. Panics on a bad index like a
// slice access would; drivers only read indices they already validated
// through the mutators.
func (m *Model) Value(i int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[i]
}

// Values returns a copy of the value sequence.
func (m *Model) Values() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.values...)
}

// Swap exchanges the values at i and j.
func (m *Model) Swap(i, j int) error {
	m.mu.Lock()
	if i < 0 || i >= len(m.values) || j < 0 || j >= len(m.values) {
		m.mu.Unlock()
		return ErrIndexOutOfRange
	}
	m.values[i], m.values[j] = m.values[j], m.values[i]
	m.mu.Unlock()
	m.notify()
	return nil
}

// SetValue writes v at index i. Merge sort uses it to copy values back
// from its auxiliary buffer; every written value originates from the
// array itself, so the sequence stays a permutation of its input.
func (m *Model) SetValue(i, v int) error {
	m.mu.Lock()
	if i < 0 || i >= len(m.values) {
		m.mu.Unlock()
		return ErrIndexOutOfRange
	}
	m.values[i] = v
	m.mu.Unlock()
	m.notify()
	return nil
}

// MarkSorted marks index i as confirmed sorted. Idempotent.
func (m *Model) MarkSorted(i int) error {
	m.mu.Lock()
	if i < 0 || i >= len(m.sorted) {
		m.mu.Unlock()
		return ErrIndexOutOfRange
	}
	m.sorted[i] = true
	m.mu.Unlock()
	m.notify()
	return nil
}

// MarkAllSorted marks every index confirmed sorted and clears the
// highlight. Called once when a run completes without cancellation.
func (m *Model) MarkAllSorted() {
	m.mu.Lock()
	for i := range m.sorted {
		m.sorted[i] = true
	}
	m.hiA, m.hiB = noHighlight, noHighlight
	m.mu.Unlock()
	m.notify()
}

// ClearMarks clears the sorted marks and the highlight without touching
// the values. Called when a run starts.
func (m *Model) ClearMarks() {
	m.mu.Lock()
	for i := range m.sorted {
		m.sorted[i] = false
	}
	m.hiA, m.hiB = noHighlight, noHighlight
	m.mu.Unlock()
	m.notify()
}

// SetHighlight marks i and j as the pair under comparison or swap.
// Pass j < 0 to highlight a single index.
func (m *Model) SetHighlight(i, j int) {
	m.mu.Lock()
	m.hiA, m.hiB = i, j
	m.mu.Unlock()
	m.notify()
}

// ClearHighlight removes the highlight.
func (m *Model) ClearHighlight() {
	m.mu.Lock()
	m.hiA, m.hiB = noHighlight, noHighlight
	m.mu.Unlock()
	m.notify()
}

// ModelSnapshot is a coherent copy of the model for rendering: values,
// sorted marks and the highlighted indices, all taken under one lock.
type ModelSnapshot struct {
	Values []int
	Sorted []bool
	HiA    int
	HiB    int
}

// Highlighted reports whether index i is part of the highlight pair.
func (s ModelSnapshot) Highlighted(i int) bool {
	return i == s.HiA || i == s.HiB
}

// Snapshot returns a consistent view of the model for the renderer.
func (m *Model) Snapshot() ModelSnapshot {
	m.mu.RLock()
	snap := ModelSnapshot{
		Values: append([]int(nil), m.values...),
		Sorted: append([]bool(nil), m.sorted...),
		HiA:    m.hiA,
		HiB:    m.hiB,
	}
	m.mu.RUnlock()
	return snap
}
