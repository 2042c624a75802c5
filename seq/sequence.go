// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"vawter.tech/delayseq"
	"vawter.tech/delayseq/internal/latch"
	"vawter.tech/delayseq/internal/safe"
)

// ErrClosed is the cause reported by a Sequence that was abandoned via
// [Sequence.Close] or by breaking out of [Sequence.All].
var ErrClosed = errors.New("sequence closed")

// A Sequence lazily produces count elements, spaced by a delay, and
// observes a cancellation signal before every element and during every
// delay. Elements are computed only when requested. A Sequence cannot
// be restarted once it reaches a terminal [State].
//
// A Sequence is intended to be driven by a single consumer. Concurrent
// calls to [Sequence.Next] are serialized.
type Sequence[T any] struct {
	cfg    config
	closed *latch.Latch
	count  int
	delay  time.Duration
	fn     func(int) T
	nextMu sync.Mutex // Serializes calls to Next; held across delays.

	mu struct {
		sync.Mutex
		err   error // Sticky terminal error.
		next  int   // Index of the next element to produce.
		state State
	}
}

// New constructs a Sequence that yields fn(0) through fn(count-1),
// waiting for delay before every element except the first. A negative
// count or delay is rejected before any suspension occurs.
func New[T any](
	count int, delay time.Duration, fn func(int) T, opts ...Option,
) (*Sequence[T], error) {
	if count < 0 {
		return nil, delayseq.Invalid("count", count)
	}
	if delay < 0 {
		return nil, delayseq.Invalid("delay", delay)
	}
	if fn == nil {
		return nil, delayseq.Invalid("element function", nil)
	}

	s := &Sequence[T]{
		closed: latch.New(),
		count:  count,
		delay:  delay,
		fn:     fn,
	}
	for _, opt := range opts {
		opt(&s.cfg)
	}
	s.cfg.sanitize()
	return s, nil
}

// Ints returns a Sequence of the values 0 through count-1.
func Ints(count int, delay time.Duration, opts ...Option) (*Sequence[int], error) {
	return New(count, delay, func(i int) int { return i }, opts...)
}

// Wrappers returns a Sequence of wrapped values 0 through count-1.
func Wrappers(
	count int, delay time.Duration, opts ...Option,
) (*Sequence[*delayseq.IntWrapper], error) {
	return New(count, delay, delayseq.Wrap, opts...)
}

// All returns a single-use iterator over the remaining elements. If
// the sequence is cancelled or fails, the error is yielded as a final
// pair with a zero value. Breaking out of the loop closes the
// sequence.
func (s *Sequence[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, ok, err := s.Next(ctx)
			if err != nil {
				yield(v, err)
				return
			}
			if !ok {
				return
			}
			if !yield(v, nil) {
				s.Close()
				return
			}
		}
	}
}

// Close abandons the sequence. Any pending delay is interrupted and
// the sequence moves to Cancelled with [ErrClosed] as the cause. Closing
// a sequence that is already terminal has no effect.
func (s *Sequence[T]) Close() {
	if !s.closed.Fire(ErrClosed) {
		return
	}
	// Any in-flight call to Next has been interrupted by the latch.
	s.nextMu.Lock()
	defer s.nextMu.Unlock()
	if st, idx, _ := s.snapshot(); !st.Terminal() {
		s.cancel(idx, ErrClosed)
	}
}

// Delay returns the pause between elements.
func (s *Sequence[T]) Delay() time.Duration { return s.delay }

// Err returns the terminal error of a Cancelled or Failed sequence.
func (s *Sequence[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.err
}

// Len returns the total number of elements the sequence will produce
// if it runs to completion.
func (s *Sequence[T]) Len() int { return s.count }

// Name returns the value passed to [WithName].
func (s *Sequence[T]) Name() string { return s.cfg.name }

// Next produces the next element. The cancellation signal attached
// with [WithCancel] and the ctx argument are both checked before the
// element is produced and both interrupt the delay.
//
// Next returns the element and true on success. Once every element has
// been produced, it returns false and a nil error. If either signal
// fires, it returns a [*delayseq.CanceledError]; any other failure is
// returned as a fault. Both outcomes are sticky.
func (s *Sequence[T]) Next(ctx context.Context) (T, bool, error) {
	s.nextMu.Lock()
	defer s.nextMu.Unlock()

	var zero T
	st, idx, err := s.snapshot()
	switch st {
	case Completed:
		return zero, false, nil
	case Cancelled, Failed:
		return zero, false, err
	}

	if idx >= s.count {
		s.transition(Completed, idx, nil)
		return zero, false, nil
	}

	// Check, then wait, then produce.
	if cause := s.signaled(ctx); cause != nil {
		return zero, false, s.cancel(idx, cause)
	}
	if idx > 0 {
		s.transition(AwaitingDelay, idx, nil)
		if err := s.wait(ctx); err != nil {
			if cause := s.signaled(ctx); cause != nil {
				return zero, false, s.cancel(idx, cause)
			}
			return zero, false, s.fail(idx, err)
		}
	}

	v, err := safe.CallR(func() T { return s.fn(idx) })
	if err != nil {
		return zero, false, s.fail(idx, err)
	}
	s.transition(Yielding, idx, nil)
	if idx+1 == s.count {
		s.transition(Completed, idx, nil)
	}
	return v, true, nil
}

// Produced returns the number of elements delivered so far.
func (s *Sequence[T]) Produced() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.next
}

// State returns the current lifecycle state.
func (s *Sequence[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.state
}

// String is for debugging use only.
func (s *Sequence[T]) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%s: %d/%d every %s (%s)",
		s.cfg.name, s.mu.next, s.count, s.delay, s.mu.state)
}

func (s *Sequence[T]) cancel(idx int, cause error) error {
	err := &delayseq.CanceledError{Cause: cause, Index: idx}
	s.transition(Cancelled, idx, err)
	return err
}

func (s *Sequence[T]) fail(idx int, fault error) error {
	err := fmt.Errorf("element %d: %w", idx, fault)
	s.transition(Failed, idx, err)
	return err
}

// signaled returns the cause of the first signal that has fired.
func (s *Sequence[T]) signaled(ctx context.Context) error {
	if s.closed.Fired() {
		return ErrClosed
	}
	if cause := delayseq.Cause(s.cfg.cancel); cause != nil {
		return cause
	}
	return delayseq.Cause(ctx)
}

func (s *Sequence[T]) snapshot() (State, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mu.state, s.mu.next, s.mu.err
}

// transition must be called with nextMu held. The index identifies the
// element being checked, awaited, or produced.
func (s *Sequence[T]) transition(to State, idx int, err error) {
	s.mu.Lock()
	from := s.mu.state
	s.mu.state = to
	if to == Yielding {
		s.mu.next = idx + 1
	}
	if err != nil {
		s.mu.err = err
	}
	s.mu.Unlock()

	if len(s.cfg.observers) == 0 {
		return
	}
	evt := Event{Err: err, From: from, Index: idx, Name: s.cfg.name, To: to}
	for _, obs := range s.cfg.observers {
		obs(evt)
	}
}

// wait runs the pacer with a context that is done when the consumer's
// context, the sequence's signal, or Close fires.
func (s *Sequence[T]) wait(ctx context.Context) error {
	merged, cancel := context.WithCancelCause(ctx)
	stopSignal := context.AfterFunc(s.cfg.cancel, func() { cancel(delayseq.ErrCanceled) })
	stopClose := s.closed.AddHook(func() { cancel(ErrClosed) })
	defer func() {
		stopSignal()
		stopClose()
		cancel(nil)
	}()

	return s.cfg.pacer.Wait(merged, s.delay)
}
