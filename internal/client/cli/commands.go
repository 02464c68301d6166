package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/search"
)

var errUnknownFilterKey = errors.New("filter keys are region, language and name")

// SetMode switches the search mode; an unknown name falls back to name.
func (a *App) SetMode(ctx context.Context, mode string) error {
	m := models.ParseSearchMode(mode)
	a.pipeline.SetMode(m)
	a.printf("Search mode: %s\n", m)
	return nil
}

// Search feeds the debounced pipeline. Results are printed when the request
// settles; an empty query clears the search immediately.
func (a *App) Search(ctx context.Context, query string) error {
	a.pipeline.SetQuery(query)
	if strings.TrimSpace(query) == "" {
		return a.List(ctx)
	}
	return nil
}

// Reset clears the query and the mode but keeps the current filter.
func (a *App) Reset(ctx context.Context) error {
	a.pipeline.Reset()
	return a.List(ctx)
}

// Filter loads the coarse result set from "key=value" arguments. Values may
// span several words, as in "name=united states".
func (a *App) Filter(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		a.printf("%v\n", err)
		return err
	}
	return a.applyFilter(ctx, f)
}

// Clear drops the coarse filter and keeps the search.
func (a *App) Clear(ctx context.Context) error {
	return a.applyFilter(ctx, search.Filter{})
}

// All resets the search and shows every country.
func (a *App) All(ctx context.Context) error {
	a.pipeline.Reset()
	return a.applyFilter(ctx, search.Filter{})
}

// More shows one more page of the displayed results.
func (a *App) More(ctx context.Context) error {
	results := a.pipeline.Results()

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, more := models.Paginate(results, a.pages, a.config.PageSize); !more {
		fmt.Fprintln(a.out, "No more countries.")
		return nil
	}
	a.pages++
	a.renderPageLocked(results)
	return nil
}

// List reprints the displayed results from the first page.
func (a *App) List(ctx context.Context) error {
	results := a.pipeline.Results()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.pages = 1
	a.renderPageLocked(results)
	return nil
}

// Show prints the detail view for code with its bordering countries.
func (a *App) Show(ctx context.Context, code string) error {
	c, err := a.client.FetchByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			a.printf("Country %s not found.\n", code)
		} else {
			a.printf("Failed to load country %s.\n", code)
		}
		return err
	}

	borders := []models.Country{}
	if len(c.Borders) > 0 {
		borders, err = a.client.FetchByCodes(ctx, c.Borders)
		if err != nil {
			a.log.Warn(ctx, "border lookup failed", "code", c.Code(), "error", err)
			borders = []models.Country{}
		}
	}

	var favorite *bool
	if a.isLoggedIn() {
		if ok, err := a.favoritesService.IsFavorite(ctx, c.Code()); err == nil {
			favorite = &ok
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	renderDetail(a.out, c, borders, favorite)
	return nil
}

func (a *App) applyFilter(ctx context.Context, f search.Filter) error {
	if err := a.pipeline.ApplyFilter(ctx, f); err != nil {
		a.log.Warn(ctx, "filter failed", "error", err)
		a.printf("Failed to load countries. Please try again later.\n")
		return err
	}
	return a.List(ctx)
}

func parseFilter(args []string) (search.Filter, error) {
	var (
		f   search.Filter
		dst *string
	)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			if dst == nil {
				return f, errUnknownFilterKey
			}
			*dst = strings.TrimSpace(*dst + " " + arg)
			continue
		}

		switch strings.ToLower(key) {
		case "region":
			dst = &f.Region
		case "language", "lang":
			dst = &f.Language
		case "name":
			dst = &f.Name
		default:
			return f, fmt.Errorf("%w: %q", errUnknownFilterKey, key)
		}
		*dst = value
	}

	f.Region = canonical(models.Regions, f.Region)
	f.Language = canonical(models.Languages, f.Language)
	return f, nil
}

// canonical returns the menu spelling of v when it matches one, else v.
func canonical(menu []string, v string) string {
	i := slices.IndexFunc(menu, func(m string) bool { return strings.EqualFold(m, v) })
	if i < 0 {
		return v
	}
	return menu[i]
}
