package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/countrytap/internal/client/services"
	"github.com/dmitrijs2005/countrytap/internal/client/toast"
)

// Favorite adds or removes code from the favorites of the signed-in user and
// reports the outcome as a toast. Only additions are checked against the
// directory, so codes that no longer resolve can still be removed.
func (a *App) Favorite(ctx context.Context, code string, add bool) error {
	if !a.isLoggedIn() {
		a.printf("Please sign in to manage favorites (type 'login')\n")
		return services.ErrNotSignedIn
	}

	code = strings.ToUpper(code)
	name := code
	if add {
		c, err := a.client.FetchByCode(ctx, code)
		if err != nil {
			a.printf("Country %s not found.\n", code)
			return err
		}
		code, name = c.Code(), c.Name.Common
	}

	if _, err := a.favoritesService.Toggle(ctx, code, add); err != nil {
		a.log.Error(ctx, "error toggling favorite", "code", code, "error", err)
		a.toasts.Show(toast.Toast{
			Title:   "Error",
			Message: "Failed to update favorites. Please try again later.",
			Kind:    toast.Error,
		})
		return err
	}

	if add {
		a.toasts.Show(toast.Toast{
			Title:   "Added to favorites",
			Message: fmt.Sprintf("%s has been added to your favorites.", name),
		})
	} else {
		a.toasts.Show(toast.Toast{
			Title:   "Removed from favorites",
			Message: fmt.Sprintf("%s has been removed from your favorites.", name),
		})
	}
	return nil
}

// Favorites lists the favorite countries that could be resolved.
func (a *App) Favorites(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Please sign in to see your favorites (type 'login')\n")
		return services.ErrNotSignedIn
	}

	cs, err := a.favoritesService.ListFavoriteCountries(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing favorites", "error", err)
		a.printf("Failed to load favorites.\n")
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(cs) == 0 {
		fmt.Fprintln(a.out, "No favorites yet, add one with 'fav <code>'.")
		return nil
	}
	renderList(a.out, cs)
	return nil
}
