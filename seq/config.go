// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package seq

import (
	"context"
	"runtime/trace"
	"time"
)

// A Pacer implements the per-element delay of a [Sequence]. The Wait
// method must return early with a non-nil error if the context is done
// before the delay has elapsed. Any other error is reported to the
// consumer as a fault.
type Pacer interface {
	Wait(ctx context.Context, d time.Duration) error
}

// PacerFunc adapts a function to the [Pacer] interface.
type PacerFunc func(ctx context.Context, d time.Duration) error

// Wait implements [Pacer].
func (fn PacerFunc) Wait(ctx context.Context, d time.Duration) error { return fn(ctx, d) }

// Sleep is the default [Pacer]. It races a timer against the context.
var Sleep Pacer = PacerFunc(sleep)

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	defer trace.StartRegion(ctx, "sequence delay").End()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// An Option configures a [Sequence].
type Option func(*config)

type config struct {
	cancel    context.Context
	name      string
	observers []Observer
	pacer     Pacer
	// Instantiated once per sequence by sanitize.
	factories []func() Observer
}

// WithCancel attaches a cancellation signal to the sequence. Any
// [context.Context] may be used, including a [delayseq.Handle]. The
// sequence observes the signal but never cancels it.
func WithCancel(ctx context.Context) Option {
	return func(cfg *config) { cfg.cancel = ctx }
}

// WithName sets the name reported in [Event] values and used by
// tracing integrations.
func WithName(name string) Option {
	return func(cfg *config) { cfg.name = name }
}

// WithObserver adds observers that are notified of state transitions.
// The observers are shared by every sequence the option is applied to.
func WithObserver(obs ...Observer) Option {
	return func(cfg *config) {
		for _, o := range obs {
			cfg.factories = append(cfg.factories, func() Observer { return o })
		}
	}
}

// WithObserverFunc adds an observer constructed by fn. The function is
// called once for each sequence the option is applied to, which allows
// stateful observers to be attached through a shared set of options.
func WithObserverFunc(fn func() Observer) Option {
	return func(cfg *config) { cfg.factories = append(cfg.factories, fn) }
}

// WithPacer replaces the default [Sleep] pacer.
func WithPacer(p Pacer) Option {
	return func(cfg *config) { cfg.pacer = p }
}

func (c *config) sanitize() {
	if c.cancel == nil {
		c.cancel = context.Background()
	}
	if c.name == "" {
		c.name = "sequence"
	}
	if c.pacer == nil {
		c.pacer = Sleep
	}
	for _, fn := range c.factories {
		if obs := fn(); obs != nil {
			c.observers = append(c.observers, obs)
		}
	}
	c.factories = nil
}
