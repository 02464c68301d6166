package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/store"
	"github.com/dmitrijs2005/countrytap/internal/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultLookupConcurrency bounds parallel lookups in ListFavoriteCountries.
const DefaultLookupConcurrency = 8

// FavoriteService manages the persisted set of favorite country codes.
// The set is re-read from the store on every call.
type FavoriteService interface {
	IsFavorite(ctx context.Context, code string) (bool, error)
	Toggle(ctx context.Context, code string, shouldAdd bool) (bool, error)
	Codes(ctx context.Context) ([]string, error)
	ListFavoriteCountries(ctx context.Context) ([]models.Country, error)
}

type favoriteService struct {
	store  *store.Store
	client client.Client
	log    logging.Logger
	limit  int
}

func NewFavoriteService(st *store.Store, c client.Client, log logging.Logger) FavoriteService {
	if log == nil {
		log = logging.Discard()
	}
	return &favoriteService{store: st, client: c, log: log, limit: DefaultLookupConcurrency}
}

// Codes returns the favorite codes in insertion order without duplicates.
func (f *favoriteService) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	found, err := f.store.Read(ctx, store.NamespaceFavorites, &codes)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	if !found {
		return []string{}, nil
	}
	return dedupe(codes), nil
}

func (f *favoriteService) IsFavorite(ctx context.Context, code string) (bool, error) {
	codes, err := f.Codes(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(codes, code), nil
}

// Toggle adds or removes code and returns shouldAdd. Repeating it is a no-op.
func (f *favoriteService) Toggle(ctx context.Context, code string, shouldAdd bool) (bool, error) {
	err := store.Update(ctx, f.store, store.NamespaceFavorites, func(cur []string, _ bool) ([]string, error) {
		cur = dedupe(cur)
		if shouldAdd {
			if !slices.Contains(cur, code) {
				cur = append(cur, code)
			}
			return cur, nil
		}
		return slices.DeleteFunc(cur, func(c string) bool { return c == code }), nil
	})
	if err != nil {
		return false, fmt.Errorf("toggle favorite %s: %w", code, err)
	}
	return shouldAdd, nil
}

// ListFavoriteCountries resolves every favorite code concurrently. Codes that
// fail to resolve are logged and left out; the set itself is not touched.
func (f *favoriteService) ListFavoriteCountries(ctx context.Context) ([]models.Country, error) {
	codes, err := f.Codes(ctx)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return []models.Country{}, nil
	}

	resolved := make([]*models.Country, len(codes))

	var g errgroup.Group
	g.SetLimit(f.limit)
	for i, code := range codes {
		g.Go(func() error {
			c, err := f.client.FetchByCode(ctx, code)
			if err != nil {
				f.log.Warn(ctx, "favorite lookup failed", "code", code, "error", err)
				return nil
			}
			resolved[i] = &c
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.Country, 0, len(codes))
	for _, c := range resolved {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out, nil
}

func dedupe(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
