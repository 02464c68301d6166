package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/countrytap/internal/client/store"
)

// fakeDirectory implements client.Client over a fixed set of countries.
type fakeDirectory struct {
	mu        sync.Mutex
	countries map[string]models.Country
	failCodes map[string]error
	calls     []string
}

func newFakeDirectory(cs ...models.Country) *fakeDirectory {
	f := &fakeDirectory{countries: map[string]models.Country{}, failCodes: map[string]error{}}
	for _, c := range cs {
		f.countries[c.Code()] = c
	}
	return f
}

func (f *fakeDirectory) FetchAll(ctx context.Context) ([]models.Country, error) { return nil, nil }
func (f *fakeDirectory) FetchByName(ctx context.Context, name string) ([]models.Country, error) {
	return nil, nil
}
func (f *fakeDirectory) FetchByRegion(ctx context.Context, region string) ([]models.Country, error) {
	return nil, nil
}
func (f *fakeDirectory) FetchByCodes(ctx context.Context, codes []string) ([]models.Country, error) {
	return nil, nil
}
func (f *fakeDirectory) Search(ctx context.Context, mode models.SearchMode, q string) ([]models.Country, error) {
	return nil, nil
}

func (f *fakeDirectory) FetchByCode(ctx context.Context, code string) (models.Country, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, code)
	if err, ok := f.failCodes[code]; ok {
		return models.Country{}, err
	}
	c, ok := f.countries[code]
	if !ok {
		return models.Country{}, client.ErrNotFound
	}
	return c, nil
}

func newMemStore(t *testing.T) (*store.Store, *metadata.MemoryRepository) {
	t.Helper()
	repo := metadata.NewMemoryRepository()
	return store.New(repo, nil), repo
}
