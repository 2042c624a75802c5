// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import "fmt"

// State describes the lifecycle of a [Sequence].
//
//	Idle -> Yielding                  (first element, no delay)
//	Idle -> Completed                 (empty sequence)
//	Yielding -> AwaitingDelay         (more elements requested)
//	AwaitingDelay -> Yielding
//	Yielding -> Completed             (last element produced)
//	any non-terminal -> Cancelled | Failed
//
// Cancelled, Completed, and Failed are terminal.
type State int

const (
	Idle State = iota
	AwaitingDelay
	Yielding
	Cancelled
	Completed
	Failed
)

var stateNames = [...]string{
	Idle:          "idle",
	AwaitingDelay: "awaiting delay",
	Yielding:      "yielding",
	Cancelled:     "cancelled",
	Completed:     "completed",
	Failed:        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal returns true for states from which no further elements
// will be produced.
func (s State) Terminal() bool {
	return s == Cancelled || s == Completed || s == Failed
}

// An Event describes a single state transition. Index is the element
// being checked, awaited, or produced. Err is set for transitions into
// Cancelled or Failed.
type Event struct {
	Err   error
	From  State
	Index int
	Name  string // The value passed to [WithName].
	To    State
}

// An Observer is notified of every state transition of a [Sequence],
// in order, from the goroutine that drives the sequence. Observers must
// not call back into the Sequence.
type Observer func(Event)
