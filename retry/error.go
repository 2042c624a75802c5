// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package retry

import "fmt"

// MaxAttemptsError indicates that a pipeline was built and drained the
// maximum number of times without completing.
type MaxAttemptsError struct {
	Attempts int
	Err      error // The fault from the final attempt.
}

// Error implements error.
func (e *MaxAttemptsError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

// Unwrap returns the enclosed error.
func (e *MaxAttemptsError) Unwrap() error {
	return e.Err
}
