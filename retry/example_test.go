// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package retry_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vawter.tech/delayseq/retry"
	"vawter.tech/delayseq/seq"
)

func ExampleDrain() {
	attempt := 0
	build := func() (*seq.Sequence[int], error) {
		attempt++
		// The first attempt faults while waiting for its second element.
		pacer := seq.Sleep
		if attempt == 1 {
			pacer = seq.PacerFunc(func(context.Context, time.Duration) error {
				return errors.New("transient")
			})
		}
		return seq.Ints(3, time.Millisecond, seq.WithPacer(pacer))
	}

	loop := &retry.Loop{MaxAttempts: 3}
	got, err := retry.Drain(context.Background(), loop.Classifier(), build)
	fmt.Println(got, err, attempt)
	// Output:
	// [0 1 2] <nil> 2
}
