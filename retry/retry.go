// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package retry re-runs a sequence pipeline that failed with a fault.
//
// Sequences are not restartable and [seq.Drain] is all or nothing, so
// a retry always builds a fresh sequence and drains it from the start.
// Cancellation is an expected outcome and is never retried.
//
// [Drain] is driven by a [Classifier] function. An exponential
// [Backoff] and a trivial [Loop] implementation are provided.
package retry

import (
	"context"
	"errors"
	"runtime/trace"

	"vawter.tech/delayseq"
	"vawter.tech/delayseq/seq"
)

// A Classifier is a function that determines if a fault is retryable.
// Each call to [Drain] is associated with a state value, which is
// initially the zero value for the S type. If a drain fails, the error
// and the current state are passed to the Classifier. The Classifier
// may return an error to stop retrying.
//
// If the drain should be retried, the Classifier returns a channel that
// emits a value when the next attempt should start (e.g.:
// [time.After]). Closing the channel without emitting a value, or
// returning a nil channel and a nil error, abandons the retry and fails
// with the error most recently passed to the Classifier.
type Classifier[S, N any] func(ctx context.Context, state *S, err error) (<-chan N, error)

// Drain builds and drains a sequence, retrying faults as directed by
// the Classifier. Errors returned by build are not retried, since they
// indicate a contract violation. If the context is done while waiting
// to retry, the most recent fault is joined with
// [delayseq.ErrCanceled].
func Drain[T, S, N any](
	ctx context.Context,
	fn Classifier[S, N],
	build func() (*seq.Sequence[T], error),
) ([]T, error) {
	var state S
	for {
		s, err := build()
		if err != nil {
			return nil, err
		}
		// Make the attempt.
		ret, err := seq.Drain(ctx, s)
		if err == nil {
			return ret, nil
		}
		if delayseq.IsCanceled(err) {
			return nil, err
		}
		// Classify the error.
		next, fail := fn(ctx, &state, err)
		if fail != nil {
			return nil, fail
		}
		if next == nil {
			return nil, err
		}
		// Wait for a decision.
		if err := waitOnChannel(ctx, next, err); err != nil {
			return nil, err
		}
	}
}

func waitOnChannel[N any](ctx context.Context, next <-chan N, err error) error {
	defer trace.StartRegion(ctx, "retry wait").End()
	select {
	case _, ok := <-next:
		if ok {
			return nil
		}
		return err
	case <-ctx.Done():
		return errors.Join(err, delayseq.ErrCanceled, delayseq.Cause(ctx))
	}
}
