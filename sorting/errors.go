package sorting

import "errors"

// Error kinds surfaced by the sorting engine. Cancellation is not an
// error kind: a cancelled run reports context.Canceled and is a normal
// terminal outcome.
var (
	// ErrIndexOutOfRange reports an index outside [0, N) passed to a
	// model mutator. The algorithm drivers never produce it on a valid
	// run; seeing it means a programming error.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidRange reports malformed randomize bounds (min > max or
	// a non-positive count). Recoverable: the action is rejected and
	// state is left unchanged.
	ErrInvalidRange = errors.New("invalid value range")

	// ErrSortRunning reports an operation that is disallowed while a
	// run is active (start, randomize). Recoverable: the action is
	// rejected and the active run is unaffected.
	ErrSortRunning = errors.New("sort already running")
)
