// Package search implements the interactive search and filter pipeline:
// a debounced free-text query dispatched by mode, and a coarse
// name/region/language filter, each guarded by its own request token so a
// late response never overwrites a newer one.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/logging"
)

type State int

const (
	Idle State = iota
	Debouncing
	Fetching
	Resolved
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Fetching:
		return "fetching"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Filter is the coarse filter taken from navigation parameters.
type Filter struct {
	Name     string
	Region   string
	Language string
}

func (f Filter) Active() bool {
	return f.Name != "" || f.Region != "" || f.Language != ""
}

// Snapshot is the observable state of a Pipeline. Results are the displayed
// results and must not be modified.
type Snapshot struct {
	State   State
	Mode    models.SearchMode
	Query   string
	Filter  Filter
	Results []models.Country
	Err     error
}

type Observer func(Snapshot)

type Option func(*Pipeline)

func WithInterval(d time.Duration) Option {
	return func(p *Pipeline) { p.interval = d }
}

func WithAfterFunc(f AfterFunc) Option {
	return func(p *Pipeline) { p.after = f }
}

func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// Pipeline is safe for concurrent use. Observers are called outside the
// internal lock, on the goroutine that caused the transition.
type Pipeline struct {
	client   client.Client
	log      logging.Logger
	interval time.Duration
	after    AfterFunc

	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc

	mu           sync.Mutex
	state        State
	mode         models.SearchMode
	query        string
	queryResults []models.Country
	queryToken   uint64
	err          error

	filter        Filter
	filterResults []models.Country
	filterToken   uint64

	observers []Observer
	closed    bool
}

// New creates a pipeline in the Idle state with mode name. ctx bounds the
// fetches started by the debounce timer; Close cancels it.
func New(ctx context.Context, c client.Client, opts ...Option) *Pipeline {
	p := &Pipeline{
		client:   c,
		log:      logging.Discard(),
		interval: DefaultDebounceInterval,
		mode:     models.SearchByName,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.debouncer = NewDebouncer(p.interval, p.after)
	return p
}

func (p *Pipeline) Subscribe(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// SetQuery records a keystroke. An empty query clears the query results
// immediately without a request; anything else restarts the debounce.
func (p *Pipeline) SetQuery(q string) {
	q = strings.TrimSpace(q)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.query = q
	if q == "" {
		p.clearQueryLocked()
	} else {
		p.restartLocked()
	}
	p.commit()
}

// SetMode switches the search mode. With a pending or shown query the
// debounce is restarted so the query is re-run under the new mode.
func (p *Pipeline) SetMode(m models.SearchMode) {
	p.mu.Lock()
	if p.closed || m == p.mode {
		p.mu.Unlock()
		return
	}
	p.mode = m
	if p.query != "" {
		p.restartLocked()
	}
	p.commit()
}

// Reset cancels the timer and returns to mode name with an empty query.
// The coarse filter is kept.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mode = models.SearchByName
	p.query = ""
	p.clearQueryLocked()
	p.commit()
}

// Close stops the pipeline. Pending timers never fire and responses still in
// flight are dropped.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.debouncer.Close()
	p.cancel()
}

// ApplyFilter loads the coarse result set: by name if set, else by region if
// set, else everything; then keeps countries speaking Language. Errors are
// returned and leave the previous filter results in place.
func (p *Pipeline) ApplyFilter(ctx context.Context, f Filter) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.filterToken++
	token := p.filterToken
	p.mu.Unlock()

	var (
		res []models.Country
		err error
	)
	switch {
	case f.Name != "":
		res, err = p.client.FetchByName(ctx, f.Name)
	case f.Region != "":
		res, err = p.client.FetchByRegion(ctx, f.Region)
	default:
		res, err = p.client.FetchAll(ctx)
	}
	if err == nil && f.Language != "" {
		res = models.Filter(res, func(c models.Country) bool { return c.SpeaksLanguage(f.Language) })
	}

	p.mu.Lock()
	if p.closed || token != p.filterToken {
		p.mu.Unlock()
		p.log.Debug(ctx, "discarding stale filter response", "token", token)
		return nil
	}
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.filter = f
	p.filterResults = res
	p.commit()
	return nil
}

func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Results returns the displayed results.
func (p *Pipeline) Results() []models.Country {
	return p.Snapshot().Results
}

func (p *Pipeline) fire() {
	p.mu.Lock()
	if p.closed || p.query == "" {
		p.mu.Unlock()
		return
	}
	p.queryToken++
	token := p.queryToken
	mode, query := p.mode, p.query
	p.state = Fetching
	p.commit()

	res, err := p.client.Search(p.ctx, mode, query)

	p.mu.Lock()
	if p.closed || token != p.queryToken {
		p.mu.Unlock()
		p.log.Debug(p.ctx, "discarding stale search response", "mode", string(mode), "query", query)
		return
	}
	if err != nil {
		p.log.Warn(p.ctx, "search failed", "mode", string(mode), "query", query, "error", err)
		p.queryResults = []models.Country{}
		p.state = Failed
		p.err = err
	} else {
		if res == nil {
			res = []models.Country{}
		}
		p.queryResults = res
		p.state = Resolved
		p.err = nil
	}
	p.commit()
}

// restartLocked re-arms the debounce timer. A search still in flight belongs
// to superseded input and is invalidated.
func (p *Pipeline) restartLocked() {
	p.queryToken++
	p.state = Debouncing
	p.debouncer.Trigger(p.fire)
}

// clearQueryLocked also invalidates any search still in flight.
func (p *Pipeline) clearQueryLocked() {
	p.debouncer.Cancel()
	p.queryToken++
	p.queryResults = nil
	p.state = Idle
	p.err = nil
}

// commit releases p.mu and notifies observers with the new snapshot.
func (p *Pipeline) commit() {
	snap := p.snapshotLocked()
	observers := append([]Observer(nil), p.observers...)
	p.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
}

func (p *Pipeline) snapshotLocked() Snapshot {
	return Snapshot{
		State:   p.state,
		Mode:    p.mode,
		Query:   p.query,
		Filter:  p.filter,
		Results: p.displayedLocked(),
		Err:     p.err,
	}
}

// displayedLocked: query and filter both active gives their intersection in
// query order; a query alone gives the query results; otherwise the filter
// results. Query results stay shown while a newer query is debouncing.
func (p *Pipeline) displayedLocked() []models.Country {
	queryActive := p.queryResults != nil
	switch {
	case queryActive && p.filter.Active():
		return models.Intersect(p.queryResults, p.filterResults)
	case queryActive:
		return p.queryResults
	default:
		return p.filterResults
	}
}
