// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package linger contains a utility for reporting on where lingering
// sequences were originally constructed.
package linger

import (
	"runtime"
	"sync"
	"sync/atomic"

	"vawter.tech/delayseq/seq"
)

// This value is sensitive to the code structure.
const callersOffset = 4

// NewRecorder constructs a [Recorder] that samples the call stack at the
// requested depth. A depth of 1 will record the location at which
// [seq.New] was called.
func NewRecorder(depth int) *Recorder {
	return &Recorder{depth: depth}
}

// A Recorder can be attached to a [seq.Sequence] to record the call
// stack where the sequence was constructed. The record is discarded
// once the sequence reaches a terminal state. It is primarily useful
// for testing scenarios, to ensure that every sequence has been drained
// or closed.
type Recorder struct {
	counter atomic.Uintptr
	data    sync.Map
	depth   int
}

// Callers returns a snapshot of the caller stacks associated with any
// sequences that have not yet reached a terminal state.
func (r *Recorder) Callers() [][]uintptr {
	var ret [][]uintptr
	r.data.Range(func(_, value any) bool {
		ret = append(ret, value.([]uintptr))
		return true
	})
	return ret
}

// Option returns a [seq.Option] that registers each sequence it is
// applied to.
func (r *Recorder) Option() seq.Option {
	return seq.WithObserverFunc(r.track)
}

func (r *Recorder) track() seq.Observer {
	pc := make([]uintptr, r.depth)
	pc = pc[:runtime.Callers(callersOffset, pc)]

	id := r.counter.Add(1)
	r.data.Store(id, pc)

	return func(evt seq.Event) {
		if evt.To.Terminal() {
			r.data.Delete(id)
		}
	}
}
