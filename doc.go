// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package delayseq provides deferred values and cancellable lazy
// sequences that produce values on a delay schedule.
//
// This package contains the shared vocabulary of the module: the
// cancellation [Handle], the [IntWrapper] element type, and the errors
// used to distinguish cancellation from faults. The engines live in
// sub-packages.
//
// # Cancellation handles
//
// A [Handle] is a write-once cancellation signal. It fires when
// [Handle.Trigger] is called, when the timeout given to
// [HandleTimeout] elapses, or when the context passed to
// [HandleParent] is done. Once fired, it stays fired.
//
//	h := delayseq.NewHandle(delayseq.HandleTimeout(time.Second))
//	defer h.Trigger()
//
// A Handle implements [context.Context], so it can be passed to any
// API that accepts a context. It also implements the AfterFunc method
// recognized by [context.WithCancel] and friends, so deriving a
// context from a Handle does not start a watcher goroutine.
// Conversely, every API in this module that accepts a cancellation
// signal accepts any [context.Context].
//
// Sequences only observe a Handle; they never fire it. One Handle may
// be shared by any number of sequences.
//
// # Sequences
//
// The [vawter.tech/delayseq/seq] sub-package contains the sequence
// engine. A [vawter.tech/delayseq/seq.Sequence] produces count
// elements, waiting for a fixed delay before each element except the
// first. Before every element and during every delay, it checks both
// the signal it was built with ([vawter.tech/delayseq/seq.WithCancel])
// and the context supplied by the consumer.
//
//	s, err := seq.Ints(10, 50*time.Millisecond, seq.WithCancel(h))
//	if err != nil { return err }
//	for v, err := range s.All(ctx) {
//	    if err != nil { return err }
//	    use(v)
//	}
//
// Elements are computed only when requested and no goroutines are
// started by the engine. [vawter.tech/delayseq/seq.Drain] collects a
// sequence into a slice and is all or nothing: on cancellation or
// fault, only the error is returned.
//
// # Deferred values
//
// The [vawter.tech/delayseq/future] sub-package contains single-value
// computations. [vawter.tech/delayseq/future.Delay] resolves after a
// timer fires, while [vawter.tech/delayseq/future.Go] runs a function
// in a new goroutine. Awaiting a future may be abandoned, but the
// computation itself is not cancellable.
//
// # Errors
//
// Cancellation is an expected outcome, reported as a [*CanceledError]
// that matches [ErrCanceled] and unwraps to the signal's cause: one of
// [ErrTriggered], [ErrTimeout], or the cause of a parent context. Use
// [IsCanceled] to test for any flavor of cancellation. Invalid
// arguments are rejected up front with errors that match [ErrInvalid].
// Anything else, such as a panic in an element function, is a fault.
// Panics are recovered and reported as a
// [vawter.tech/delayseq/future.RecoveredError] with the stack at the
// point of the panic.
//
// # Tracing
//
// Blocking waits are annotated with [runtime/trace.StartRegion] and
// every drain creates a [runtime/trace.Task], so delays, rate-limit
// pauses, and retry waits are visible in Go execution traces with no
// extra code. Use [vawter.tech/delayseq/seq.WithName] to give
// sequences descriptive names. The [vawter.tech/delayseq/tracing]
// sub-package records sequences as OpenTelemetry spans.
//
// # Sub-packages
//
// The [vawter.tech/delayseq/limit] sub-package provides a rate-limited
// [vawter.tech/delayseq/seq.Pacer]. The [vawter.tech/delayseq/retry]
// sub-package re-runs a whole pipeline after a fault with
// [vawter.tech/delayseq/retry.Backoff] or
// [vawter.tech/delayseq/retry.Loop]. The
// [vawter.tech/delayseq/library] sub-package exposes the module
// through a flat API in integer milliseconds.
//
// # Testing
//
// The [vawter.tech/delayseq/linger] sub-package provides helpers to
// detect sequences that were neither drained nor closed by the end of
// a test.
package delayseq
