// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

// Package latch defines a write-once signal.
package latch

import (
	"sync"
	"sync/atomic"
	"time"
)

// A Latch fires at most once. After firing, the Done channel is closed
// and Cause reports the error passed to the winning Fire call.
type Latch struct {
	done  chan struct{}
	fired atomic.Bool

	mu struct {
		sync.Mutex
		cause  error
		hooks  map[uint64]func()
		hookID uint64
		timer  *time.Timer // Created by FireAfter, cleared on fire.
	}
}

// New returns an unfired Latch.
func New() *Latch {
	return &Latch{done: make(chan struct{})}
}

// AddHook registers a callback that is executed once the Latch fires.
// Hooks run outside of the Latch's critical section, so they may call
// back into the Latch. If the Latch has already fired, the callback is
// executed immediately. The returned function unregisters the hook and
// reports whether it did so before the Latch fired.
func (l *Latch) AddHook(fn func()) (cancel func() bool) {
	l.mu.Lock()
	if l.fired.Load() {
		l.mu.Unlock()
		fn()
		return func() bool { return false }
	}
	if l.mu.hooks == nil {
		l.mu.hooks = make(map[uint64]func())
	}
	id := l.mu.hookID
	l.mu.hookID++
	l.mu.hooks[id] = fn
	l.mu.Unlock()

	return func() bool {
		// Disarm if the hooks have already been claimed.
		select {
		case <-l.done:
			return false
		default:
		}

		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.mu.hooks[id]; !ok {
			return false
		}
		delete(l.mu.hooks, id)
		return true
	}
}

// Cause returns the error passed to the winning Fire call, or nil if
// the Latch has not fired.
func (l *Latch) Cause() error {
	if !l.fired.Load() {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mu.cause
}

// Done returns a channel that is closed when the Latch fires.
func (l *Latch) Done() <-chan struct{} { return l.done }

// Fire closes the Done channel and records the cause. It returns true
// if this call fired the Latch. Subsequent calls are no-ops.
func (l *Latch) Fire(cause error) bool {
	var hooks map[uint64]func()
	if !l.fireLocked(cause, &hooks) {
		return false
	}
	for _, fn := range hooks {
		fn()
	}
	return true
}

// FireAfter arranges for the Latch to fire with the given cause once
// the duration has elapsed. Only the first call arms a timer.
func (l *Latch) FireAfter(d time.Duration, cause error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fired.Load() || l.mu.timer != nil {
		return
	}
	l.mu.timer = time.AfterFunc(d, func() { l.Fire(cause) })
}

// Fired returns true once the Latch has fired.
func (l *Latch) Fired() bool { return l.fired.Load() }

// fireLocked is the one-shot transition. It hands the registered hooks
// back to the caller so they can be executed without holding the mutex.
func (l *Latch) fireLocked(cause error, hooks *map[uint64]func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.fired.CompareAndSwap(false, true) {
		return false
	}
	l.mu.cause = cause
	close(l.done)

	if timer := l.mu.timer; timer != nil {
		timer.Stop()
		l.mu.timer = nil
	}
	*hooks = l.mu.hooks
	l.mu.hooks = nil
	return true
}
