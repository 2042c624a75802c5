// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vawter.tech/delayseq"
	"vawter.tech/delayseq/seq"
)

func ExampleSequence_All() {
	s, err := seq.Ints(3, time.Millisecond)
	if err != nil {
		panic(err)
	}
	for v, err := range s.All(context.Background()) {
		if err != nil {
			panic(err)
		}
		fmt.Println(v)
	}

	// Output:
	// 0
	// 1
	// 2
}

func ExampleDrain() {
	s, err := seq.Wrappers(3, time.Millisecond)
	if err != nil {
		panic(err)
	}
	items, err := seq.Drain(context.Background(), s)
	if err != nil {
		panic(err)
	}
	fmt.Println(items)

	// Output:
	// [IntWrapper(0) IntWrapper(1) IntWrapper(2)]
}

func ExampleWithCancel() {
	// The handle fires long before the second element is due.
	h := delayseq.NewHandle(delayseq.HandleTimeout(10 * time.Millisecond))
	s, err := seq.Ints(3, time.Hour, seq.WithCancel(h))
	if err != nil {
		panic(err)
	}

	for v, err := range s.All(context.Background()) {
		if errors.Is(err, delayseq.ErrCanceled) {
			fmt.Println("cancelled:", s.Produced(), "produced")
			break
		}
		fmt.Println(v)
	}

	// Output:
	// 0
	// cancelled: 1 produced
}
