package search

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/countrytap/internal/client/models"
)

type fakeTimer struct {
	clock   *fakeClock
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock records scheduled callbacks; Fire runs the live ones on the
// calling goroutine.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) live() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

func (c *fakeClock) Fire() int {
	timers := c.live()
	c.mu.Lock()
	for _, t := range timers {
		t.fired = true
	}
	c.mu.Unlock()
	for _, t := range timers {
		t.f()
	}
	return len(timers)
}

type searchCall struct {
	Mode  models.SearchMode
	Query string
}

// fakeDirectory serves Search and the coarse lookups from canned data.
// A non-nil gate blocks calls for the matching key until it is closed.
type fakeDirectory struct {
	mu      sync.Mutex
	search  map[string][]models.Country
	errs    map[string]error
	gates   map[string]chan struct{}
	calls   []searchCall
	all     []models.Country
	coarse  []string
	started chan string
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		search:  map[string][]models.Country{},
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
		started: make(chan string, 16),
	}
}

func (f *fakeDirectory) wait(key string) {
	f.mu.Lock()
	gate := f.gates[key]
	f.mu.Unlock()
	select {
	case f.started <- key:
	default:
	}
	if gate != nil {
		<-gate
	}
}

func (f *fakeDirectory) Search(ctx context.Context, mode models.SearchMode, q string) ([]models.Country, error) {
	f.mu.Lock()
	f.calls = append(f.calls, searchCall{mode, q})
	f.mu.Unlock()

	key := string(mode) + ":" + q
	f.wait(key)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[key]; err != nil {
		return nil, err
	}
	return f.search[key], nil
}

func (f *fakeDirectory) FetchAll(ctx context.Context) ([]models.Country, error) {
	f.record("all")
	f.wait("all")
	return f.all, f.errs["all"]
}

func (f *fakeDirectory) FetchByName(ctx context.Context, name string) ([]models.Country, error) {
	key := "name=" + name
	f.record(key)
	f.wait(key)
	return models.Filter(f.all, func(c models.Country) bool {
		return models.ContainsFold(c.Name.Common, name)
	}), f.errs[key]
}

func (f *fakeDirectory) FetchByRegion(ctx context.Context, region string) ([]models.Country, error) {
	key := "region=" + region
	f.record(key)
	f.wait(key)
	return models.Filter(f.all, func(c models.Country) bool { return c.Region == region }), f.errs[key]
}

func (f *fakeDirectory) FetchByCode(ctx context.Context, code string) (models.Country, error) {
	return models.Country{}, nil
}

func (f *fakeDirectory) FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error) {
	return nil, nil
}

func (f *fakeDirectory) record(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coarse = append(f.coarse, key)
}

func (f *fakeDirectory) searchCalls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.calls...)
}

func (f *fakeDirectory) coarseCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.coarse...)
}

func country(code, name, region string, langs ...string) models.Country {
	c := models.Country{CCA3: code, Name: models.CountryName{Common: name}, Region: region, Languages: map[string]string{}}
	for i, l := range langs {
		c.Languages[string(rune('a'+i))] = l
	}
	return c
}
