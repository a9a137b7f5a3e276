// Package control defines lightweight command messages used by the UI to
// request actions from the application command loop. The command-loop
// centralizes run-lifecycle changes to avoid races and to simplify
// synchronization.
package control

import "SortViz/sorting"

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdRandomize CommandType = iota
	CmdStart
	CmdStop
	CmdReset
)

// Command is the message sent from UI to AppManager.commandLoop. The
// optional Reply channel carries the outcome back to the sender, which
// is how the UI learns about rejected actions.
type Command struct {
	Type      CommandType
	Algorithm sorting.Algorithm // CmdStart
	DelayMs   int               // CmdStart
	Reply     chan error        // optional reply channel
}
