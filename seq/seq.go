// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package seq contains a cancellable, lazily-evaluated sequence of
// values produced on a delay schedule.
//
// A [Sequence] is pull-driven: the caller's goroutine drives it by
// calling [Sequence.Next] or by ranging over [Sequence.All], and no
// element is computed before it is requested. Before each element, the
// sequence checks its cancellation signal; between elements it waits
// for the configured delay, and that wait is interrupted as soon as the
// signal fires.
//
// [Drain] consumes a sequence into a slice with all-or-nothing
// semantics, and [ForEach] applies a callback to each element.
//
// The context arguments to these functions do not need to be derived
// from a [delayseq.Handle]; any [context.Context] may act as a
// cancellation signal.
package seq
