// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package safe contains utilities for executing user-provided
// functions, such as element factories and observers.
package safe

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const captureDepth = 32

// A RecoveredError associates a recovered panic with a stack trace.
type RecoveredError struct {
	Err   error
	Stack []uintptr
}

// Error implements error.
func (e *RecoveredError) Error() string {
	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "recovered: %v\n", e.Err)
	frames := runtime.CallersFrames(e.Stack)
	for {
		frame, more := frames.Next()
		_, _ = fmt.Fprintf(&sb, "%s ( %s:%d )\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}

// String is for debugging use only.
func (e *RecoveredError) String() string {
	return e.Error()
}

// Unwrap returns the enclosed error.
func (e *RecoveredError) Unwrap() error { return e.Err }

// CallE executes the function. If the function panics, the recovered
// value will be added to the returned error.
func CallE(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(err, r)
		}
	}()
	err = fn()
	return
}

// CallR executes a function that cannot fail, converting a panic into
// an error.
func CallR[R any](fn func() R) (ret R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(nil, r)
		}
	}()
	ret = fn()
	return
}

// CallRE executes the function, returning some result value. If the
// function panics, the recovered value will be added to the returned
// error.
func CallRE[R any](fn func() (R, error)) (ret R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(err, r)
		}
	}()
	ret, err = fn()
	return
}

// recovered must be called from the deferred function so that the
// captured stack starts at the panicking frame.
func recovered(prior error, r any) error {
	rErr, ok := r.(error)
	if !ok {
		rErr = fmt.Errorf("panic: %v", r)
	}
	stack := make([]uintptr, captureDepth)
	stack = stack[:runtime.Callers(3, stack)]
	return &RecoveredError{
		Err:   errors.Join(prior, rErr),
		Stack: stack,
	}
}
