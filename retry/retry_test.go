// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
	"vawter.tech/delayseq"
	"vawter.tech/delayseq/seq"
)

var errFlaky = errors.New("flaky pacer")

// flaky returns a builder whose first failures sequences fault on their
// first delay.
func flaky(count int, delay time.Duration, failures int, opts ...seq.Option) (func() (*seq.Sequence[int], error), *int) {
	builds := new(int)
	return func() (*seq.Sequence[int], error) {
		*builds++
		pacer := seq.Sleep
		if *builds <= failures {
			pacer = seq.PacerFunc(func(context.Context, time.Duration) error { return errFlaky })
		}
		return seq.Ints(count, delay, append(opts, seq.WithPacer(pacer))...)
	}, builds
}

func TestDrainBackoff(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := require.New(t)

		b := &Backoff{
			MaxAttempts: 4,
			MaxDelay:    time.Second,
			MinDelay:    10 * time.Millisecond,
			Multiplier:  10,
		}
		build, builds := flaky(3, 5*time.Millisecond, 2)

		start := time.Now()
		got, err := Drain(t.Context(), b.Classifier(), build)
		r.NoError(err)
		r.Equal([]int{0, 1, 2}, got)
		r.Equal(3, *builds)
		// 10ms and 100ms of backoff, then two 5ms delays.
		r.Equal(120*time.Millisecond, time.Since(start))
	})
}

func TestDrainBackoffMaxDelay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := require.New(t)

		b := &Backoff{MaxDelay: 50 * time.Millisecond}
		build, builds := flaky(2, 0, 3)

		start := time.Now()
		got, err := Drain(t.Context(), b.Classifier(), build)
		r.NoError(err)
		r.Equal([]int{0, 1}, got)
		r.Equal(4, *builds)
		r.Equal(110*time.Millisecond, time.Since(start))
	})
}

func TestDrainMaxAttempts(t *testing.T) {
	r := require.New(t)

	l := &Loop{MaxAttempts: 3}
	build, builds := flaky(2, 0, 100)

	got, err := Drain(t.Context(), l.Classifier(), build)
	r.Nil(got)
	r.ErrorIs(err, errFlaky)
	var maxErr *MaxAttemptsError
	r.ErrorAs(err, &maxErr)
	r.EqualError(err, "gave up after 3 attempts: element 1: flaky pacer")
	r.Equal(3, maxErr.Attempts)
	r.Equal(3, *builds)
}

func TestDrainNotRetryable(t *testing.T) {
	r := require.New(t)

	l := &Loop{Retryable: func(err error) bool { return !errors.Is(err, errFlaky) }}
	build, builds := flaky(2, 0, 100)

	_, err := Drain(t.Context(), l.Classifier(), build)
	r.ErrorIs(err, errFlaky)
	r.Equal(1, *builds)
}

func TestDrainNeverRetriesCancellation(t *testing.T) {
	r := require.New(t)

	h := delayseq.NewHandle()
	h.Trigger()
	build, builds := flaky(2, 0, 0, seq.WithCancel(h))

	got, err := Drain(t.Context(), (&Loop{}).Classifier(), build)
	r.Nil(got)
	r.True(delayseq.IsCanceled(err))
	r.ErrorIs(err, delayseq.ErrTriggered)
	r.Equal(1, *builds)
}

func TestDrainCanceledWhileWaiting(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := require.New(t)

		ctx, cancel := context.WithTimeout(t.Context(), 500*time.Millisecond)
		defer cancel()

		b := &Backoff{MinDelay: time.Second}
		build, builds := flaky(2, 0, 100)

		start := time.Now()
		_, err := Drain(ctx, b.Classifier(), build)
		r.ErrorIs(err, errFlaky)
		r.ErrorIs(err, delayseq.ErrCanceled)
		r.ErrorIs(err, context.DeadlineExceeded)
		r.Equal(1, *builds)
		r.Equal(500*time.Millisecond, time.Since(start))
	})
}

func TestDrainBuildError(t *testing.T) {
	r := require.New(t)

	builds := 0
	_, err := Drain(t.Context(), (&Loop{}).Classifier(), func() (*seq.Sequence[int], error) {
		builds++
		return seq.Ints(-1, 0)
	})
	r.ErrorIs(err, delayseq.ErrInvalid)
	r.Equal(1, builds)
}

func TestDrainClassifierGivesUp(t *testing.T) {
	r := require.New(t)

	var seen []error
	fn := Classifier[int, struct{}](func(_ context.Context, _ *int, err error) (<-chan struct{}, error) {
		seen = append(seen, err)
		return nil, nil
	})
	build, builds := flaky(2, 0, 100)

	_, err := Drain(t.Context(), fn, build)
	r.ErrorIs(err, errFlaky)
	r.Len(seen, 1)
	r.Same(seen[0], err)
	r.Equal(1, *builds)
}

func TestDrainClassifierClosesChannel(t *testing.T) {
	r := require.New(t)

	fn := Classifier[int, struct{}](func(context.Context, *int, error) (<-chan struct{}, error) {
		ch := make(chan struct{})
		close(ch)
		return ch, nil
	})
	build, builds := flaky(2, 0, 100)

	_, err := Drain(t.Context(), fn, build)
	r.ErrorIs(err, errFlaky)
	r.Equal(1, *builds)
}
