// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package delayseq

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntWrapperEquality(t *testing.T) {
	a := assert.New(t)

	a.True(Wrap(3).Equal(Wrap(3)))
	a.Equal(Wrap(3).Hash(), Wrap(3).Hash())
	a.False(Wrap(3).Equal(Wrap(4)))
	a.False(Wrap(3).Equal(nil))

	var nilWrapper *IntWrapper
	a.True(nilWrapper.Equal(nil))
	a.Zero(nilWrapper.Hash())
}

func TestIntWrapperMembership(t *testing.T) {
	a := assert.New(t)

	set := map[IntWrapper]struct{}{
		*Wrap(1): {},
		*Wrap(2): {},
	}
	_, found := set[*Wrap(2)]
	a.True(found)
	_, found = set[*Wrap(5)]
	a.False(found)

	items := []*IntWrapper{Wrap(0), Wrap(1), Wrap(2)}
	a.True(slices.ContainsFunc(items, Wrap(1).Equal))
	a.False(slices.ContainsFunc(items, Wrap(9).Equal))
}

func TestIntWrapperString(t *testing.T) {
	a := assert.New(t)

	a.Equal("IntWrapper(42)", Wrap(42).String())
	a.Equal("IntWrapper(-1)", Wrap(-1).String())
	var nilWrapper *IntWrapper
	a.Equal("IntWrapper(<nil>)", nilWrapper.String())
}
