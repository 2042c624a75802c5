// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package future contains deferred, single-value computations.
//
// Unlike a lazy sequence, the computation behind a Future cannot be
// cancelled. A caller may stop waiting by abandoning [Future.Await],
// but the value will still be produced.
package future

import (
	"context"
	"runtime/trace"
	"time"

	"vawter.tech/delayseq"
	"vawter.tech/delayseq/internal/safe"
)

// A RecoveredError is returned by a Future whose function panicked.
type RecoveredError = safe.RecoveredError

// A Future resolves exactly once to a value or an error.
type Future[T any] struct {
	done chan struct{}
	err  error // Written before done is closed.
	val  T
}

// Delay returns a Future that resolves to fn() once at least d has
// elapsed. No goroutine is parked while waiting. A negative duration is
// rejected with [delayseq.ErrInvalid].
func Delay[T any](d time.Duration, fn func() T) (*Future[T], error) {
	if d < 0 {
		return nil, delayseq.Invalid("delay", d)
	}
	if fn == nil {
		return nil, delayseq.Invalid("function", nil)
	}
	f := newFuture[T]()
	time.AfterFunc(d, func() {
		f.resolve(safe.CallR(fn))
	})
	return f, nil
}

// Go returns a Future that resolves to the result of executing fn in
// a new goroutine.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		f.resolve(safe.CallRE(fn))
	}()
	return f
}

// Resolved returns a Future that has already resolved.
func Resolved[T any](val T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(val, err)
	return f
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Await blocks until the Future resolves or the context is done. If
// the context is done first, its error is returned, and the Future
// continues to resolve in the background.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}

	defer trace.StartRegion(ctx, "future await").End()
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed when the Future resolves.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Result returns the resolved value without blocking. The boolean is
// false if the Future has not yet resolved.
func (f *Future[T]) Result() (T, bool, error) {
	select {
	case <-f.done:
		return f.val, true, f.err
	default:
		var zero T
		return zero, false, nil
	}
}

func (f *Future[T]) resolve(val T, err error) {
	f.val, f.err = val, err
	close(f.done)
}
