// Package services contains the application services of the countrytap
// client: mock authentication gating favorites, and the favorites set itself.
package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/store"
	"github.com/dmitrijs2005/countrytap/internal/logging"
	"github.com/google/uuid"
)

const minPasswordLen = 6

// AuthService manages the single locally persisted session.
//
// Contract:
//   - CurrentUser: the persisted user, nil when absent or unreadable.
//   - SignIn: validate mock credentials and persist the user, overwriting.
//   - SignInWithProvider: verify a provider assertion, then SignIn.
//   - SignOut: best-effort removal of the session.
//
// There is no real authentication here; any well-formed input is accepted.
type AuthService interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	SignIn(ctx context.Context, creds models.Credentials) (*models.User, error)
	SignInWithProvider(ctx context.Context, p IdentityProvider) (*models.User, error)
	SignOut(ctx context.Context)
}

type authService struct {
	store  *store.Store
	secret []byte
	log    logging.Logger
}

// NewAuthService builds an AuthService. secret verifies provider assertions.
func NewAuthService(st *store.Store, secret []byte, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{store: st, secret: secret, log: log}
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	var u models.User
	found, err := a.store.Read(ctx, store.NamespaceUser, &u)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !found || u.Email == "" {
		return nil, nil
	}
	return &u, nil
}

// SignIn requires an email and either a provider name hint or a password of
// at least six characters (runes, not bytes). The display name defaults to
// the email local part.
func (a *authService) SignIn(ctx context.Context, creds models.Credentials) (*models.User, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidCredentials)
	}
	if creds.Name == "" && utf8.RuneCountInString(creds.Password) < minPasswordLen {
		return nil, ErrInvalidCredentials
	}

	name := creds.Name
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	u := &models.User{
		ID:    "user_" + uuid.NewString(),
		Email: email,
		Name:  name,
	}
	if err := a.store.Write(ctx, store.NamespaceUser, u); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "signed in", "user_id", u.ID)
	return u, nil
}

func (a *authService) SignInWithProvider(ctx context.Context, p IdentityProvider) (*models.User, error) {
	token, err := p.Authenticate(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s sign-in: %w", p.Name(), err)
	}

	claims, err := VerifyAssertion(token, a.secret)
	if err != nil {
		return nil, err
	}

	return a.SignIn(ctx, models.Credentials{Email: claims.Email, Name: claims.Name})
}

func (a *authService) SignOut(ctx context.Context) {
	if err := a.store.Clear(ctx, store.NamespaceUser); err != nil {
		a.log.Error(ctx, "sign out failed", "error", err)
	}
}
