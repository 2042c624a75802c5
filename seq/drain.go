// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"vawter.tech/delayseq/internal/safe"
)

// ErrConsumed is returned by [Drain] when the sequence has already
// been iterated. Sequences are not restartable.
var ErrConsumed = errors.New("sequence already consumed")

// maxPrealloc bounds the capacity reserved by Drain up front.
const maxPrealloc = 1024

// Drain consumes the sequence into a slice. The ctx argument is the
// drain's own cancellation signal, independent of any signal the
// sequence was built with; either one terminates the drain.
//
// Drain is all or nothing. On normal completion it returns every
// element in order. On cancellation or fault, the partially
// accumulated elements are discarded and only the error is returned.
func Drain[T any](ctx context.Context, s *Sequence[T]) ([]T, error) {
	if st := s.State(); st != Idle {
		return nil, fmt.Errorf("%s: %w (%s)", s.Name(), ErrConsumed, st)
	}

	ctx, task := trace.NewTask(ctx, s.Name()+" drain")
	defer task.End()

	ret := make([]T, 0, min(s.Len(), maxPrealloc))
	if err := ForEach(ctx, s, func(_ int, v T) error {
		ret = append(ret, v)
		return nil
	}); err != nil {
		return nil, err
	}
	return ret, nil
}

// ForEach drives the sequence to completion, executing the callback
// for each element in order. The index of the element is passed to the
// callback.
//
// An error returned by the callback stops the iteration, closes the
// sequence, and is returned to the caller. A panic within the callback
// is treated in the same manner.
func ForEach[T any](
	ctx context.Context,
	s *Sequence[T],
	fn func(int, T) error,
) error {
	for idx := 0; ; idx++ {
		item, ok, err := s.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			// Clean exit.
			return nil
		}
		if err := safe.CallE(func() error {
			return fn(idx, item)
		}); err != nil {
			s.Close()
			return fmt.Errorf("index %d: %w", idx, err)
		}
	}
}
