package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/services"
	"github.com/dmitrijs2005/countrytap/internal/client/toast"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and a hidden password and signs in with the
// mock credentials check. Any email with a password of six or more
// characters is accepted.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.authService.SignIn(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			a.printf("Invalid email or password\n")
		} else {
			a.log.Error(ctx, "sign in failed", "error", err)
			a.printf("Sign in failed, please try again later\n")
		}
		return err
	}

	a.setUser(u)
	a.toasts.Show(toast.Toast{Title: "Welcome back!", Message: "You have successfully signed in."})
	return nil
}

// LoginWithProvider signs in through one of the mock identity providers.
func (a *App) LoginWithProvider(ctx context.Context, provider string) error {
	provider = strings.ToLower(provider)
	if !slices.Contains(services.MockProviders, provider) {
		err := fmt.Errorf("unknown provider %q", provider)
		a.printf("Unknown provider %s, available: %s\n", provider, strings.Join(services.MockProviders, ", "))
		return err
	}

	p := services.NewMockProvider(provider, []byte(a.config.ProviderSecret))
	u, err := a.authService.SignInWithProvider(ctx, p)
	if err != nil {
		a.log.Error(ctx, "provider sign in failed", "provider", provider, "error", err)
		a.toasts.Show(toast.Toast{
			Title:   "Error",
			Message: fmt.Sprintf("Failed to sign in with %s.", provider),
			Kind:    toast.Error,
		})
		return err
	}

	a.setUser(u)
	a.toasts.Show(toast.Toast{
		Title:   "Welcome!",
		Message: fmt.Sprintf("You have successfully signed in with %s.", provider),
	})
	return nil
}

// Logout removes the persisted session. Favorites are kept.
func (a *App) Logout(ctx context.Context) error {
	a.authService.SignOut(ctx)
	a.setUser(nil)
	a.printf("Signed out\n")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.currentUser()
	if u == nil {
		a.printf("Not signed in\n")
		return nil
	}
	a.printf("%s <%s> (%s)\n", u.Name, u.Email, u.ID)
	return nil
}
