// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package delayseq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vawter.tech/delayseq/internal/latch"
)

var (
	errTriggered = errors.Join(context.Canceled, ErrTriggered)
	errTimeout   = errors.Join(context.DeadlineExceeded, ErrTimeout)
)

// A Handle is a shared, write-once cancellation signal. It is created
// by a caller and observed, never owned, by the sequences and drains
// it is passed to. A Handle may be shared by any number of sequences.
//
// Handle implements [context.Context], so it can be passed to any API
// that accepts a context. Once fired, a Handle stays fired.
//
// All methods on a Handle are safe for concurrent use.
type Handle struct {
	deadline time.Time // Zero if the Handle never auto-fires.
	latch    *latch.Latch
	parent   context.Context // Nil unless HandleParent was used.
}

var _ context.Context = (*Handle)(nil)

// A HandleOption configures a Handle created by [NewHandle].
type HandleOption func(*handleConfig)

type handleConfig struct {
	parent  context.Context
	timeout *time.Duration
}

// HandleParent causes the Handle to fire when the parent context is
// done. Values are looked up in the parent.
func HandleParent(ctx context.Context) HandleOption {
	return func(cfg *handleConfig) { cfg.parent = ctx }
}

// HandleTimeout causes the Handle to fire exactly once after the given
// duration, without further action by the caller. A negative duration
// is treated as zero.
func HandleTimeout(d time.Duration) HandleOption {
	return func(cfg *handleConfig) { cfg.timeout = &d }
}

func (c *handleConfig) sanitize() {
	if c.timeout != nil && *c.timeout < 0 {
		zero := time.Duration(0)
		c.timeout = &zero
	}
}

// NewHandle constructs a Handle. With no options, the Handle is
// permanently open until [Handle.Trigger] is called.
func NewHandle(opts ...HandleOption) *Handle {
	cfg := &handleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.sanitize()

	h := &Handle{
		latch:  latch.New(),
		parent: cfg.parent,
	}
	if cfg.timeout != nil {
		h.deadline = time.Now().Add(*cfg.timeout)
		h.latch.FireAfter(*cfg.timeout, errTimeout)
	}
	if parent := cfg.parent; parent != nil {
		if d, ok := parent.Deadline(); ok && (h.deadline.IsZero() || d.Before(h.deadline)) {
			h.deadline = d
		}
		stop := context.AfterFunc(parent, func() {
			h.latch.Fire(Cause(parent))
		})
		// Release the parent's reference once we fire for other reasons.
		h.latch.AddHook(func() { stop() })
	}
	return h
}

// AfterFunc arranges for f to be called in its own goroutine once the
// Handle fires. Calling the returned stop function unregisters f and
// reports whether it did so before the Handle fired. This method allows
// [context.WithCancel] and friends to derive from a Handle without
// starting a watcher goroutine.
func (h *Handle) AfterFunc(f func()) (stop func() bool) {
	return h.latch.AddHook(func() { go f() })
}

// Deadline implements [context.Context]. A deadline is reported for
// Handles built with [HandleTimeout] or with a parent that has one.
func (h *Handle) Deadline() (deadline time.Time, ok bool) {
	return h.deadline, !h.deadline.IsZero()
}

// Done implements [context.Context]. The channel is closed when the
// Handle fires.
func (h *Handle) Done() <-chan struct{} { return h.latch.Done() }

// Err implements [context.Context]. It returns nil until the Handle
// fires. Afterward, it returns an error that is [context.Canceled] and
// [ErrTriggered] for a manual trigger, [context.DeadlineExceeded] and
// [ErrTimeout] for an elapsed timeout, or the parent's error.
func (h *Handle) Err() error {
	if !h.latch.Fired() {
		return nil
	}
	return h.latch.Cause()
}

// IsTriggered returns true once the Handle has fired for any reason.
func (h *Handle) IsTriggered() bool { return h.latch.Fired() }

// String is for debugging use only.
func (h *Handle) String() string {
	return fmt.Sprintf("delayseq.Handle(triggered=%t)", h.IsTriggered())
}

// Trigger fires the Handle. Calling Trigger on a Handle that has
// already fired is a no-op.
func (h *Handle) Trigger() { h.latch.Fire(errTriggered) }

// Value implements [context.Context] by delegating to the parent
// context, if any.
func (h *Handle) Value(key any) any {
	if h.parent == nil {
		return nil
	}
	return h.parent.Value(key)
}
