package sorting_test

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"SortViz/sorting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(values []int) *sorting.Session {
	m := sorting.NewModel()
	m.SetValues(values)
	return sorting.NewSession(m)
}

func TestRandomizeProducesBoundedValues(t *testing.T) {
	s := newSession(nil)

	require.NoError(t, s.Randomize(50, 10, 20))

	snap := s.Model().Snapshot()
	require.Len(t, snap.Values, 50)
	for i, v := range snap.Values {
		assert.GreaterOrEqual(t, v, 10)
		assert.LessOrEqual(t, v, 20)
		assert.False(t, snap.Sorted[i])
		assert.False(t, snap.Highlighted(i))
	}
}

func TestRandomizeSingleValueRange(t *testing.T) {
	s := newSession(nil)

	require.NoError(t, s.Randomize(3, 7, 7))
	assert.Equal(t, []int{7, 7, 7}, s.Model().Values())
}

func TestRandomizeRejectsInvalidRange(t *testing.T) {
	s := newSession([]int{1, 2, 3})

	require.ErrorIs(t, s.Randomize(0, 1, 10), sorting.ErrInvalidRange)
	require.ErrorIs(t, s.Randomize(-4, 1, 10), sorting.ErrInvalidRange)
	require.ErrorIs(t, s.Randomize(5, 9, 3), sorting.ErrInvalidRange)

	assert.Equal(t, []int{1, 2, 3}, s.Model().Values(), "rejection must leave values untouched")
}

func TestStartWhileRunningRejected(t *testing.T) {
	s := newSession(descending(100))

	require.NoError(t, s.Start(sorting.Bubble, 60000))
	defer func() {
		s.Stop()
		s.Wait()
	}()

	require.ErrorIs(t, s.Start(sorting.Quick, 1), sorting.ErrSortRunning)
	require.ErrorIs(t, s.Randomize(10, 1, 5), sorting.ErrSortRunning)
	assert.True(t, s.Running())
}

func TestStopBeforeAnyStepCompletes(t *testing.T) {
	s := newSession([]int{5, 3, 8, 1})

	require.NoError(t, s.Start(sorting.Bubble, 60000))
	s.Stop()
	s.Wait()

	snap := s.Model().Snapshot()
	assert.Equal(t, []int{5, 3, 8, 1}, snap.Values)
	assert.Equal(t, []bool{false, false, false, false}, snap.Sorted)
	assert.Equal(t, sorting.Idle, s.State())
	assert.Equal(t, sorting.Cancelled, s.LastRun())
}

func TestStopLeavesPermutationOfInput(t *testing.T) {
	input := descending(100)
	s := newSession(input)

	require.NoError(t, s.Start(sorting.Quick, 1))
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	s.Wait()

	got := s.Model().Values()
	want := append([]int(nil), input...)
	slices.Sort(want)
	slices.Sort(got)
	assert.Equal(t, want, got, "cancelled run must leave a permutation of the input")
}

func TestResetRestoresPreStartSnapshot(t *testing.T) {
	input := descending(100)
	s := newSession(input)

	require.NoError(t, s.Start(sorting.Bubble, 1))
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	s.Wait()
	s.Reset()

	snap := s.Model().Snapshot()
	assert.Equal(t, input, snap.Values, "reset must restore the pre-start values exactly")
	for i := range snap.Sorted {
		assert.False(t, snap.Sorted[i])
		assert.False(t, snap.Highlighted(i))
	}
	assert.Equal(t, sorting.Idle, s.State())
}

func TestResetCancelsAnActiveRun(t *testing.T) {
	input := descending(100)
	s := newSession(input)

	require.NoError(t, s.Start(sorting.Merge, 60000))
	s.Reset()

	assert.Equal(t, sorting.Idle, s.State())
	assert.Equal(t, input, s.Model().Values())
}

func TestResetWithoutSnapshotOnlyClearsMarks(t *testing.T) {
	s := newSession([]int{4, 2, 9})
	require.NoError(t, s.Model().MarkSorted(0))
	s.Model().SetHighlight(1, 2)

	s.Reset()

	snap := s.Model().Snapshot()
	assert.Equal(t, []int{4, 2, 9}, snap.Values, "no snapshot means values stay put")
	assert.Equal(t, []bool{false, false, false}, snap.Sorted)
	assert.False(t, snap.Highlighted(1))
}

func TestRandomizeDiscardsSnapshot(t *testing.T) {
	s := newSession(descending(8))

	require.NoError(t, s.Start(sorting.Bubble, 1))
	s.Wait()
	require.NoError(t, s.Randomize(8, 1, 100))

	after := s.Model().Values()
	s.Reset()
	assert.Equal(t, after, s.Model().Values(), "reset after randomize must not resurrect the old snapshot")
}

func TestRunToCompletionMarksEverything(t *testing.T) {
	for _, algo := range []sorting.Algorithm{sorting.Bubble, sorting.Quick, sorting.Merge} {
		t.Run(algo.String(), func(t *testing.T) {
			s := newSession([]int{9, 2, 7, 2, 5, 1, 8, 3})

			require.NoError(t, s.Start(algo, 1))
			s.Wait()

			snap := s.Model().Snapshot()
			assert.True(t, slices.IsSorted(snap.Values))
			for i := range snap.Sorted {
				assert.True(t, snap.Sorted[i], "index %d must be confirmed after completion", i)
				assert.False(t, snap.Highlighted(i))
			}
			assert.Equal(t, sorting.Idle, s.State())
			assert.Equal(t, sorting.Completed, s.LastRun())
		})
	}
}

func TestRunDoneCallbackReportsOutcome(t *testing.T) {
	s := newSession(descending(100))
	outcome := make(chan bool, 1)
	s.SetOnRunDone(func(cancelled bool) { outcome <- cancelled })

	require.NoError(t, s.Start(sorting.Bubble, 60000))
	s.Stop()
	s.Wait()
	assert.True(t, <-outcome, "a stopped run reports cancelled")

	s2 := newSession([]int{2, 1})
	s2.SetOnRunDone(func(cancelled bool) { outcome <- cancelled })
	require.NoError(t, s2.Start(sorting.Bubble, 1))
	s2.Wait()
	assert.False(t, <-outcome, "a finished run reports completed")
}

// Park a cancelled run inside its teardown (the highlight clear) and
// verify the run slot is not released early: a start or randomize
// accepted there could race a second driver against the unwinding one.
func TestTeardownHoldsRunSlotAfterStop(t *testing.T) {
	m := sorting.NewModel()
	m.SetValues(descending(4))
	s := sorting.NewSession(m)

	var armed atomic.Bool
	release := make(chan struct{})
	parked := make(chan struct{})
	var once sync.Once
	m.SetOnChange(func() {
		if armed.Load() && m.Snapshot().HiA < 0 {
			once.Do(func() {
				close(parked)
				<-release
			})
		}
	})

	require.NoError(t, s.Start(sorting.Bubble, 60000))
	armed.Store(true)
	s.Stop()
	<-parked

	require.ErrorIs(t, s.Start(sorting.Quick, 60000), sorting.ErrSortRunning)
	require.ErrorIs(t, s.Randomize(4, 1, 9), sorting.ErrSortRunning)
	assert.True(t, s.Running())

	close(release)
	s.Wait()
	assert.Equal(t, sorting.Idle, s.State())
	assert.Equal(t, sorting.Cancelled, s.LastRun())

	m.SetOnChange(nil)
	require.NoError(t, s.Start(sorting.Quick, 1))
	s.Wait()
	assert.Equal(t, sorting.Completed, s.LastRun())
}

// Same for the completed path: quick sort defers all confirmation, so a
// fully set mask can only come from the teardown's mark-all sweep.
func TestTeardownHoldsRunSlotWhileMarkingAll(t *testing.T) {
	m := sorting.NewModel()
	m.SetValues([]int{2, 1})
	s := sorting.NewSession(m)

	release := make(chan struct{})
	parked := make(chan struct{})
	var once sync.Once
	m.SetOnChange(func() {
		snap := m.Snapshot()
		full := len(snap.Sorted) > 0
		for _, ok := range snap.Sorted {
			if !ok {
				full = false
				break
			}
		}
		if full {
			once.Do(func() {
				close(parked)
				<-release
			})
		}
	})

	require.NoError(t, s.Start(sorting.Quick, 1))
	<-parked

	require.ErrorIs(t, s.Start(sorting.Merge, 1), sorting.ErrSortRunning)
	require.ErrorIs(t, s.Randomize(2, 1, 9), sorting.ErrSortRunning)
	assert.True(t, s.Running())

	close(release)
	s.Wait()
	assert.Equal(t, sorting.Idle, s.State())
	assert.Equal(t, sorting.Completed, s.LastRun())
	assert.Equal(t, []int{1, 2}, s.Model().Values())
}

func TestSetDelayFloorsAtOneMillisecond(t *testing.T) {
	s := newSession(nil)

	s.SetDelay(0)
	assert.Equal(t, 1, s.DelayMs())
	s.SetDelay(-5)
	assert.Equal(t, 1, s.DelayMs())
	s.SetDelay(40)
	assert.Equal(t, 40, s.DelayMs())
}

func descending(n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = n - i
	}
	return values
}
