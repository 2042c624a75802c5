// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package retry

import "context"

// Loop implements a trivial, immediate retry behavior.
type Loop struct {
	MaxAttempts int              // Defaults to 2 if unset.
	Retryable   func(error) bool // Defaults to retrying all faults.
}

// Classifier returns a [Classifier] that retries immediately.
func (l *Loop) Classifier() Classifier[int, struct{}] {
	attempts := l.MaxAttempts
	if attempts == 0 {
		attempts = 2
	}
	fn := l.Retryable
	if fn == nil {
		fn = func(_ error) bool { return true }
	}
	return func(_ context.Context, state *int, err error) (<-chan struct{}, error) {
		if !fn(err) {
			return nil, err
		}
		*state++
		if *state >= attempts {
			return nil, &MaxAttemptsError{Attempts: *state, Err: err}
		}
		ch := make(chan struct{}, 1)
		ch <- struct{}{}
		return ch, nil
	}
}
