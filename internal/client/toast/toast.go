// Package toast is the notification surface of the REPL: at most one toast
// is active, and it dismisses itself after a fixed duration unless closed
// earlier or replaced.
package toast

import (
	"fmt"
	"sync"
	"time"
)

const DefaultDuration = 5 * time.Second

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

type Toast struct {
	Title   string
	Message string
	Kind    Kind
}

func (t Toast) String() string {
	kind := t.Kind
	if kind == "" {
		kind = Success
	}
	if t.Message == "" {
		return fmt.Sprintf("[%s] %s", kind, t.Title)
	}
	return fmt.Sprintf("[%s] %s: %s", kind, t.Title, t.Message)
}

type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Stopper

// Manager owns the active toast. onChange is called with the new toast, or
// nil on dismissal, outside the internal lock.
type Manager struct {
	duration time.Duration
	after    AfterFunc
	onChange func(*Toast)

	mu      sync.Mutex
	current *Toast
	timer   Stopper
	gen     uint64
	closed  bool
}

func NewManager(duration time.Duration, after AfterFunc, onChange func(*Toast)) *Manager {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if after == nil {
		after = func(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }
	}
	if onChange == nil {
		onChange = func(*Toast) {}
	}
	return &Manager{duration: duration, after: after, onChange: onChange}
}

// Show replaces the active toast and restarts the dismissal timer.
// An empty kind means success.
func (m *Manager) Show(t Toast) {
	if t.Kind == "" {
		t.Kind = Success
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.stopLocked()
	m.gen++
	gen := m.gen
	m.current = &t
	m.timer = m.after(m.duration, func() { m.expire(gen) })
	m.mu.Unlock()

	m.onChange(&t)
}

// Dismiss closes the active toast, if any.
func (m *Manager) Dismiss() {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return
	}
	m.stopLocked()
	m.gen++
	m.current = nil
	m.mu.Unlock()

	m.onChange(nil)
}

func (m *Manager) Current() *Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	t := *m.current
	return &t
}

// Close dismisses silently and ignores later toasts.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.gen++
	m.current = nil
	m.closed = true
}

func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || m.current == nil {
		m.mu.Unlock()
		return
	}
	m.current = nil
	m.timer = nil
	m.mu.Unlock()

	m.onChange(nil)
}

func (m *Manager) stopLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
