// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffSanitize(t *testing.T) {
	r := require.New(t)

	b := (&Backoff{}).sanitize()
	r.Zero(b.Jitter)
	r.Equal(4, b.MaxAttempts)
	r.Equal(time.Second, b.MaxDelay)
	r.Equal(10*time.Millisecond, b.MinDelay)
	r.Equal(float32(10), b.Multiplier)
	r.True(b.Retryable(errors.New("any")))
}

func TestBackoffState(t *testing.T) {
	r := require.New(t)

	fn := (&Backoff{MaxAttempts: 10}).Classifier()
	var st backoffState
	want := []time.Duration{
		10 * time.Millisecond,
		100 * time.Millisecond,
		time.Second,
		time.Second,
	}
	for i, delay := range want {
		ch, err := fn(t.Context(), &st, errFlaky)
		r.NoError(err)
		r.NotNil(ch)
		r.Equal(i+1, st.count)
		r.Equal(delay, st.delay)
	}
}
