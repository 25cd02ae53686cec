// Package clock schedules cancelable deferred callbacks.
//
// Real fires through time.AfterFunc and hands the callback to a Poster so it
// runs on the UI goroutine. Manual fires synchronously from Advance and is
// meant for tests.
package clock

import (
	"sync"
	"time"
)

// Timer is a pending callback
type Timer interface {
	// Stop cancels the callback, false if it already fired or was stopped
	Stop() bool
}

// Scheduler defers callbacks
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

// Poster delivers a callback to the goroutine that owns the state it touches
type Poster func(fn func())

// Real is the wall-clock scheduler
type Real struct {
	post Poster
}

// NewReal creates a scheduler; nil post runs callbacks on the timer goroutine
func NewReal(post Poster) *Real {
	return &Real{post: post}
}

func (r *Real) Now() time.Time {
	return time.Now()
}

func (r *Real) AfterFunc(d time.Duration, fn func()) Timer {
	if r.post == nil {
		return time.AfterFunc(d, fn)
	}
	post := r.post
	return time.AfterFunc(d, func() { post(fn) })
}

// Manual is a controllable scheduler for tests
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	pending []*manualTimer
}

type manualTimer struct {
	owner   *Manual
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

// NewManual creates a manual scheduler starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{owner: m, due: m.now.Add(d), fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Pending returns the number of timers neither fired nor stopped
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Advance moves time forward and fires due timers in due order
// Callbacks run without the lock held so they may schedule or stop timers
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		var next *manualTimer
		for _, t := range m.pending {
			if t.stopped || t.fired || t.due.After(target) {
				continue
			}
			if next == nil || t.due.Before(next.due) {
				next = t
			}
		}
		if next == nil {
			m.now = target
			m.compact()
			m.mu.Unlock()
			return
		}
		next.fired = true
		if next.due.After(m.now) {
			m.now = next.due
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

// compact drops finished timers, caller holds the lock
func (m *Manual) compact() {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.pending = live
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
