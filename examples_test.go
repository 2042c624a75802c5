// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package delayseq_test

import (
	"context"
	"errors"
	"fmt"

	"vawter.tech/delayseq"
	"vawter.tech/delayseq/seq"
)

func ExampleNewHandle() {
	h := delayseq.NewHandle()
	fmt.Println(h.IsTriggered())

	// Triggering is idempotent.
	h.Trigger()
	h.Trigger()
	fmt.Println(h.IsTriggered(), errors.Is(h.Err(), delayseq.ErrTriggered))
	// Output:
	// false
	// true true
}

func ExampleHandle_context() {
	h := delayseq.NewHandle()

	// A Handle can parent a standard context without a goroutine.
	ctx, cancel := context.WithCancel(h)
	defer cancel()

	h.Trigger()
	<-ctx.Done()
	fmt.Println(context.Cause(ctx) != nil)
	// Output:
	// true
}

func ExampleIsCanceled() {
	h := delayseq.NewHandle()
	s, _ := seq.Ints(3, 0, seq.WithCancel(h))

	h.Trigger()
	_, err := seq.Drain(context.Background(), s)
	fmt.Println(delayseq.IsCanceled(err))
	fmt.Println(err)
	// Output:
	// true
	// element 0: canceled: context canceled
	// cancellation triggered
}
