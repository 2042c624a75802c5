// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package library_test

import (
	"context"
	"fmt"

	"vawter.tech/delayseq"
	"vawter.tech/delayseq/library"
)

func Example() {
	lib := library.New()
	ctx := context.Background()

	p, _ := lib.PromiseWrapper(1)
	w, _ := p.Await(ctx)
	fmt.Println(w)

	s, _ := lib.Ints(4, 1, nil)
	ints, err := lib.CollectInts(ctx, s)
	fmt.Println(ints, err)

	h := lib.NewHandle()
	h.Trigger()
	s, _ = lib.Ints(4, 1, h)
	_, err = lib.CollectInts(ctx, s)
	fmt.Println(delayseq.IsCanceled(err))
	// Output:
	// IntWrapper(1)
	// [0 1 2 3] <nil>
	// true
}
