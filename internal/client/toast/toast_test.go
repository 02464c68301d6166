package toast

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualTimer struct {
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualClock struct {
	timers []*manualTimer
	last   time.Duration
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Stopper {
	c.last = d
	t := &manualTimer{f: f}
	c.timers = append(c.timers, t)
	return t
}

type changes struct {
	mu  sync.Mutex
	got []*Toast
}

func (c *changes) record(t *Toast) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, t)
}

func TestManager_ShowAndAutoDismiss(t *testing.T) {
	clock := &manualClock{}
	ch := &changes{}
	m := NewManager(0, clock.AfterFunc, ch.record)

	m.Show(Toast{Title: "Added to favorites"})
	require.NotNil(t, m.Current())
	assert.Equal(t, Success, m.Current().Kind)
	assert.Equal(t, DefaultDuration, clock.last)

	clock.timers[0].f()
	assert.Nil(t, m.Current())
	require.Len(t, ch.got, 2)
	assert.Equal(t, "Added to favorites", ch.got[0].Title)
	assert.Nil(t, ch.got[1])
}

func TestManager_AtMostOneActive(t *testing.T) {
	clock := &manualClock{}
	ch := &changes{}
	m := NewManager(time.Second, clock.AfterFunc, ch.record)

	m.Show(Toast{Title: "first", Kind: Info})
	m.Show(Toast{Title: "second", Kind: Error})

	assert.True(t, clock.timers[0].stopped)
	assert.Equal(t, "second", m.Current().Title)

	// the replaced toast's timer must not dismiss the new one
	clock.timers[0].f()
	assert.Equal(t, "second", m.Current().Title)

	clock.timers[1].f()
	assert.Nil(t, m.Current())
	assert.Len(t, ch.got, 3)
}

func TestManager_DismissEarly(t *testing.T) {
	clock := &manualClock{}
	ch := &changes{}
	m := NewManager(time.Second, clock.AfterFunc, ch.record)

	m.Dismiss()
	assert.Empty(t, ch.got)

	m.Show(Toast{Title: "Welcome back!"})
	m.Dismiss()
	assert.Nil(t, m.Current())
	assert.True(t, clock.timers[0].stopped)

	clock.timers[0].f()
	assert.Len(t, ch.got, 2)
}

func TestManager_CloseIgnoresLaterToasts(t *testing.T) {
	clock := &manualClock{}
	m := NewManager(time.Second, clock.AfterFunc, nil)

	m.Show(Toast{Title: "x"})
	m.Close()
	m.Show(Toast{Title: "y"})
	assert.Nil(t, m.Current())
	assert.Len(t, clock.timers, 1)
}

func TestManager_RealTimer(t *testing.T) {
	m := NewManager(10*time.Millisecond, nil, nil)
	m.Show(Toast{Title: "bye"})
	require.Eventually(t, func() bool { return m.Current() == nil }, time.Second, 5*time.Millisecond)
}

func TestToast_String(t *testing.T) {
	assert.Equal(t, "[success] Added to favorites", Toast{Title: "Added to favorites"}.String())
	assert.Equal(t, "[error] Error: Sign in first", Toast{Title: "Error", Message: "Sign in first", Kind: Error}.String())
}
