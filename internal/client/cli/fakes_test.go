package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/config"
	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/countrytap/internal/client/search"
	"github.com/dmitrijs2005/countrytap/internal/client/store"
	"github.com/dmitrijs2005/countrytap/internal/logging"
)

func mkCountry(code, name, region string, langs ...string) models.Country {
	c := models.Country{
		Name:       models.CountryName{Common: name, Official: "Republic of " + name},
		CCA3:       code,
		Region:     region,
		Population: 1234567,
		Languages:  map[string]string{},
	}
	for i, l := range langs {
		c.Languages[fmt.Sprintf("l%d", i)] = l
	}
	return c
}

// fakeDirectory implements client.Client over a fixed list of countries.
type fakeDirectory struct {
	mu         sync.Mutex
	countries  []models.Country
	allErr     error
	bordersErr error

	regions  []string
	searches []string
}

var _ client.Client = (*fakeDirectory)(nil)

func (f *fakeDirectory) FetchAll(ctx context.Context) ([]models.Country, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return append([]models.Country(nil), f.countries...), nil
}

func (f *fakeDirectory) FetchByName(ctx context.Context, name string) ([]models.Country, error) {
	return models.Filter(f.countries, func(c models.Country) bool { return models.ContainsFold(c.Name.Common, name) }), nil
}

func (f *fakeDirectory) FetchByRegion(ctx context.Context, region string) ([]models.Country, error) {
	f.mu.Lock()
	f.regions = append(f.regions, region)
	f.mu.Unlock()
	return models.Filter(f.countries, func(c models.Country) bool { return strings.EqualFold(c.Region, region) }), nil
}

func (f *fakeDirectory) FetchByCode(ctx context.Context, code string) (models.Country, error) {
	for _, c := range f.countries {
		if c.Code() == code {
			return c, nil
		}
	}
	return models.Country{}, client.ErrNotFound
}

func (f *fakeDirectory) FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error) {
	if f.bordersErr != nil {
		return nil, f.bordersErr
	}
	var out []models.Country
	for _, code := range codes {
		if c, err := f.FetchByCode(ctx, code); err == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeDirectory) Search(ctx context.Context, mode models.SearchMode, q string) ([]models.Country, error) {
	f.mu.Lock()
	f.searches = append(f.searches, string(mode)+":"+q)
	f.mu.Unlock()
	return f.FetchByName(ctx, q)
}

type fakeTimer struct{ stopped bool }

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock holds debounce callbacks until Fire runs the latest one.
type fakeClock struct {
	mu    sync.Mutex
	last  func()
	timer *fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) search.Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = f
	c.timer = &fakeTimer{}
	return c.timer
}

func (c *fakeClock) Fire() {
	c.mu.Lock()
	f, t := c.last, c.timer
	c.last = nil
	c.mu.Unlock()
	if f != nil && !t.stopped {
		f()
	}
}

func newTestApp(t *testing.T, dir *fakeDirectory) (*App, *bytes.Buffer, *fakeClock) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageType = config.StorageMemory

	st := store.New(metadata.NewMemoryRepository(), nil)
	out := &bytes.Buffer{}
	clock := &fakeClock{}

	a := newApp(context.Background(), cfg, logging.Discard(), st, dir, strings.NewReader(""), out,
		search.WithAfterFunc(clock.AfterFunc))
	t.Cleanup(a.Close)
	return a, out, clock
}

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func europe() []models.Country {
	fra := mkCountry("FRA", "France", "Europe", "French")
	fra.Borders = []string{"DEU", "ESP"}
	fra.Capital = []string{"Paris"}
	fra.Flag = "🇫🇷"
	return []models.Country{
		fra,
		mkCountry("DEU", "Germany", "Europe", "German"),
		mkCountry("ESP", "Spain", "Europe", "Spanish"),
		mkCountry("CAN", "Canada", "Americas", "English", "French"),
		mkCountry("BRA", "Brazil", "Americas", "Portuguese"),
	}
}
