// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package delayseq

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCanceled is matched by [errors.Is] for every cancellation
	// outcome reported by a sequence or a drain.
	ErrCanceled = errors.New("canceled")

	// ErrInvalid is wrapped by errors that reject a negative count or
	// delay at construction time.
	ErrInvalid = errors.New("invalid argument")

	// ErrTimeout is the cause of a [Handle] that fired because its
	// [HandleTimeout] elapsed.
	ErrTimeout = errors.New("cancellation timeout elapsed")

	// ErrTriggered is the cause of a [Handle] that fired because
	// [Handle.Trigger] was called.
	ErrTriggered = errors.New("cancellation triggered")
)

// A CanceledError reports that a cancellation signal was observed
// before the element at Index could be produced. It matches
// [ErrCanceled] and unwraps to the signal's cause.
type CanceledError struct {
	Cause error
	Index int
}

// Error implements error.
func (e *CanceledError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("element %d: canceled", e.Index)
	}
	return fmt.Sprintf("element %d: canceled: %v", e.Index, e.Cause)
}

// Is implements the [errors.Is] protocol.
func (e *CanceledError) Is(target error) bool { return target == ErrCanceled }

// Unwrap returns the enclosed cause.
func (e *CanceledError) Unwrap() error { return e.Cause }

// IsCanceled returns true if the error represents a cancellation
// outcome rather than a fault. Plain [context.Canceled] and
// [context.DeadlineExceeded] errors are also considered cancellations.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Invalid returns an error wrapping [ErrInvalid] for a rejected
// parameter.
func Invalid(param string, value any) error {
	return fmt.Errorf("%s %v: %w", param, value, ErrInvalid)
}

// Cause returns the error explaining why the context is done, or nil
// if it is not. A cause attached with [context.WithCancelCause] is
// joined with the context's Err unless the two already match. A
// [Handle] reports only the reason it fired, never a cause recorded
// later by its parent.
func Cause(ctx context.Context) error {
	if h, ok := ctx.(*Handle); ok {
		return h.Err()
	}
	err := ctx.Err()
	if err == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil && !errors.Is(err, cause) {
		return errors.Join(err, cause)
	}
	return err
}
