// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package library exposes the delayseq primitives through a flat API
// expressed in integer milliseconds, for use by hosts that drive the
// module from outside of Go.
package library

import (
	"context"
	"slices"
	"time"

	"vawter.tech/delayseq"
	"vawter.tech/delayseq/future"
	"vawter.tech/delayseq/seq"
)

// Library holds options that are applied to every sequence it builds.
// A Library is immutable and safe for concurrent use.
type Library struct {
	opts []seq.Option
}

// New constructs a Library.
func New(opts ...seq.Option) *Library {
	return &Library{opts: slices.Clone(opts)}
}

func millis(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

// PromiseInt returns a timer-driven future that resolves to ms after
// ms milliseconds.
func (l *Library) PromiseInt(ms int) (*future.Future[int], error) {
	return future.Delay(millis(ms), func() int { return ms })
}

// PromiseWrapper returns a timer-driven future that resolves to a
// wrapped ms after ms milliseconds.
func (l *Library) PromiseWrapper(ms int) (*future.Future[*delayseq.IntWrapper], error) {
	return future.Delay(millis(ms), func() *delayseq.IntWrapper {
		return delayseq.Wrap(ms)
	})
}

// TaskInt returns a goroutine-driven future that resolves to ms after
// ms milliseconds.
func (l *Library) TaskInt(ms int) (*future.Future[int], error) {
	if ms < 0 {
		return nil, delayseq.Invalid("delay", millis(ms))
	}
	return future.Go(func() (int, error) {
		sleep(millis(ms))
		return ms, nil
	}), nil
}

// TaskWrapper returns a goroutine-driven future that resolves to a
// wrapped ms after ms milliseconds.
func (l *Library) TaskWrapper(ms int) (*future.Future[*delayseq.IntWrapper], error) {
	if ms < 0 {
		return nil, delayseq.Invalid("delay", millis(ms))
	}
	return future.Go(func() (*delayseq.IntWrapper, error) {
		sleep(millis(ms))
		return delayseq.Wrap(ms), nil
	}), nil
}

func sleep(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
}

// Ints returns a sequence of the values 0 through count-1, spaced by ms
// milliseconds. A nil handle means the sequence is never cancelled by
// a signal other than the consumer's context.
func (l *Library) Ints(count, ms int, h *delayseq.Handle) (*seq.Sequence[int], error) {
	return seq.Ints(count, millis(ms), l.options(h)...)
}

// Wrappers is the [*delayseq.IntWrapper] counterpart of [Library.Ints].
func (l *Library) Wrappers(
	count, ms int, h *delayseq.Handle,
) (*seq.Sequence[*delayseq.IntWrapper], error) {
	return seq.Wrappers(count, millis(ms), l.options(h)...)
}

// NewHandle returns a cancellation handle. If a timeout is given, the
// handle fires automatically after that many milliseconds. Only the
// first timeout value is used.
func (l *Library) NewHandle(timeoutMs ...int) *delayseq.Handle {
	if len(timeoutMs) == 0 {
		return delayseq.NewHandle()
	}
	return delayseq.NewHandle(delayseq.HandleTimeout(millis(timeoutMs[0])))
}

// CollectInts drains the sequence. The context is the collection's own
// cancellation signal.
func (l *Library) CollectInts(ctx context.Context, s *seq.Sequence[int]) ([]int, error) {
	return seq.Drain(ctx, s)
}

// CollectWrappers drains the sequence. The context is the collection's
// own cancellation signal.
func (l *Library) CollectWrappers(
	ctx context.Context, s *seq.Sequence[*delayseq.IntWrapper],
) ([]*delayseq.IntWrapper, error) {
	return seq.Drain(ctx, s)
}

func (l *Library) options(h *delayseq.Handle) []seq.Option {
	ret := slices.Clip(l.opts)
	if h != nil {
		ret = append(ret, seq.WithCancel(h))
	}
	return ret
}
