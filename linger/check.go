// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package linger

import (
	"runtime"
)

// CheckClean will record a test error if the Recorder is tracking any
// sequence that was neither drained nor closed. A snapshot of the stack
// where each sequence was constructed is written into the test log.
func CheckClean(t TestingT, r *Recorder) {
	callers := r.Callers()
	if len(callers) == 0 {
		return
	}

	// Improve error messages if we're being called from a real test.
	if x, ok := t.(interface{ Helper() }); ok {
		x.Helper()
	}

	t.Errorf("%d lingering sequence(s) detected", len(callers))
	for _, stack := range callers {
		t.Errorf("  sequence constructed at:")
		frames := runtime.CallersFrames(stack)
		for {
			frame, more := frames.Next()
			t.Errorf("    %s %s:%d", frame.Function, frame.File, frame.Line)
			if !more {
				break
			}
		}
	}
}

// TestingT is the subset of [testing.TB] needed by [CheckClean].
type TestingT interface {
	Errorf(string, ...any)
}
