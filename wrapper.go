// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package delayseq

import (
	"fmt"
	"hash/maphash"
)

// seed is shared so that hashes are stable within a process.
var seed = maphash.MakeSeed()

// An IntWrapper is a reference-type element that holds an integer. Two
// wrappers are equal iff their values are equal. The struct is
// comparable, so dereferenced wrappers may be used as map keys.
type IntWrapper struct {
	Value int
}

// Wrap returns a new IntWrapper.
func Wrap(value int) *IntWrapper {
	return &IntWrapper{Value: value}
}

// Equal reports value equality. Two nil wrappers are equal.
func (w *IntWrapper) Equal(other *IntWrapper) bool {
	if w == nil || other == nil {
		return w == other
	}
	return w.Value == other.Value
}

// Hash returns a hash that is consistent with [IntWrapper.Equal].
func (w *IntWrapper) Hash() uint64 {
	if w == nil {
		return 0
	}
	return maphash.Comparable(seed, w.Value)
}

// String renders the wrapper as IntWrapper(<value>).
func (w *IntWrapper) String() string {
	if w == nil {
		return "IntWrapper(<nil>)"
	}
	return fmt.Sprintf("IntWrapper(%d)", w.Value)
}
