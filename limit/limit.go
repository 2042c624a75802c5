// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package limit provides [seq.Pacer] implementations that impose
// throughput limits on sequences.
//
// Attach a pacer using [seq.WithPacer] during sequence construction. A
// single pacer may be shared by many sequences to bound their combined
// rate.
package limit

import (
	"context"
	"errors"
	"runtime/trace"
	"time"

	"golang.org/x/time/rate"
	"vawter.tech/delayseq/seq"
)

// ErrExceedsBurst is returned by a pacer whose limiter can never admit
// an element.
var ErrExceedsBurst = errors.New("rate limit admits no elements")

// A Rate paces elements so that they are produced no faster than the
// configured rate, in addition to the sequence's own delay. The first
// element of a sequence is never paced.
type Rate struct {
	l *rate.Limiter
}

var _ seq.Pacer = (*Rate)(nil)

// WithMaxRate is a wrapper around a [rate.Limiter] that admits r
// elements per second with bursts of up to b elements.
func WithMaxRate(r float64, b int) *Rate {
	if b <= 0 {
		panic(errors.New("burst must be greater than zero"))
	}
	return &Rate{l: rate.NewLimiter(rate.Limit(r), b)}
}

// Limiter returns the underlying limiter, which may be adjusted at
// runtime.
func (p *Rate) Limiter() *rate.Limiter { return p.l }

// Wait implements [seq.Pacer]. It waits for the longer of the
// sequence's delay and the limiter's reservation. If the context is
// done first, the reservation is returned to the limiter.
func (p *Rate) Wait(ctx context.Context, d time.Duration) error {
	res := p.l.Reserve()
	if !res.OK() {
		return ErrExceedsBurst
	}
	wait := max(d, res.Delay())
	if wait <= 0 {
		return nil
	}

	defer trace.StartRegion(ctx, "rate limit wait").End()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	}
}
