package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dbclient "github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/countrytap/internal/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("provider-secret")

func TestSignIn_PasswordLength(t *testing.T) {
	st, _ := newMemStore(t)
	a := NewAuthService(st, testSecret, nil)
	ctx := context.Background()

	_, err := a.SignIn(ctx, models.Credentials{Email: "a@b.com", Password: "12345"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// three characters, six bytes
	_, err = a.SignIn(ctx, models.Credentials{Email: "a@b.com", Password: "ééé"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.SignIn(ctx, models.Credentials{Email: "a@b.com", Password: "éééééé"})
	require.NoError(t, err)

	u, err := a.SignIn(ctx, models.Credentials{Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "a", u.Name)
	assert.Equal(t, "a@b.com", u.Email)
	assert.True(t, strings.HasPrefix(u.ID, "user_"))
}

func TestSignIn_Validation(t *testing.T) {
	tests := []struct {
		name  string
		creds models.Credentials
		ok    bool
	}{
		{"missing email", models.Credentials{Password: "secret123"}, false},
		{"blank email", models.Credentials{Email: "  ", Password: "secret123"}, false},
		{"no password no hint", models.Credentials{Email: "a@b.com"}, false},
		{"name hint without password", models.Credentials{Email: "demo@google.com", Name: "Google User"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := newMemStore(t)
			a := NewAuthService(st, testSecret, nil)

			u, err := a.SignIn(context.Background(), tt.creds)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidCredentials)
				require.Nil(t, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.creds.Name, u.Name)
		})
	}
}

func TestSignIn_OverwritesPreviousUser(t *testing.T) {
	st, _ := newMemStore(t)
	a := NewAuthService(st, testSecret, nil)
	ctx := context.Background()

	first, err := a.SignIn(ctx, models.Credentials{Email: "first@x.com", Password: "secret1"})
	require.NoError(t, err)
	second, err := a.SignIn(ctx, models.Credentials{Email: "second@x.com", Password: "secret2"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	cur, err := a.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, cur)
}

func TestSession_SurvivesFreshServiceAndSignOutClears(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "countrytap.db")

	open := func() (AuthService, func()) {
		db, err := dbclient.InitDatabase(ctx, dbclient.DriverSQLite, dsn)
		require.NoError(t, err)
		st := store.New(metadata.NewSQLiteRepository(db), nil)
		return NewAuthService(st, testSecret, nil), func() { _ = db.Close() }
	}

	a1, close1 := open()
	u, err := a1.SignIn(ctx, models.Credentials{Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)
	close1()

	a2, close2 := open()
	defer close2()

	got, err := a2.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	a2.SignOut(ctx)
	got, err = a2.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCurrentUser_CorruptedSessionIsSignedOut(t *testing.T) {
	st, repo := newMemStore(t)
	a := NewAuthService(st, testSecret, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "rest_countries_user", []byte("{broken")))

	u, err := a.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

type erroringRepo struct {
	*metadata.MemoryRepository
	deleteErr error
}

func (r erroringRepo) Delete(ctx context.Context, key string) error { return r.deleteErr }

func TestSignOut_FailureIsNotSurfaced(t *testing.T) {
	repo := erroringRepo{MemoryRepository: metadata.NewMemoryRepository(), deleteErr: errors.New("read-only")}
	a := NewAuthService(store.New(repo, nil), testSecret, nil)

	assert.NotPanics(t, func() { a.SignOut(context.Background()) })
}

func TestSignInWithProvider_Mock(t *testing.T) {
	for _, name := range MockProviders {
		t.Run(name, func(t *testing.T) {
			st, _ := newMemStore(t)
			a := NewAuthService(st, testSecret, nil)

			u, err := a.SignInWithProvider(context.Background(), NewMockProvider(name, testSecret))
			require.NoError(t, err)
			assert.Equal(t, "demo@"+name+".com", u.Email)
			assert.Equal(t, strings.ToUpper(name[:1])+name[1:]+" User", u.Name)
		})
	}
}

func TestSignInWithProvider_WrongSecretRejected(t *testing.T) {
	st, _ := newMemStore(t)
	a := NewAuthService(st, testSecret, nil)

	_, err := a.SignInWithProvider(context.Background(), NewMockProvider("github", []byte("other")))
	require.ErrorIs(t, err, ErrInvalidAssertion)

	u, err := a.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
}

type stubProvider struct {
	token string
	err   error
}

func (s stubProvider) Name() string { return "stub" }
func (s stubProvider) Authenticate(ctx context.Context) (string, error) {
	return s.token, s.err
}

func TestSignInWithProvider_ProviderFailure(t *testing.T) {
	st, _ := newMemStore(t)
	a := NewAuthService(st, testSecret, nil)

	boom := errors.New("popup closed")
	_, err := a.SignInWithProvider(context.Background(), stubProvider{err: boom})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "stub sign-in")
}

func TestVerifyAssertion(t *testing.T) {
	good, err := IssueAssertion("google", "demo@google.com", "Google User", testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := VerifyAssertion(good, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "demo@google.com", claims.Email)
	assert.Equal(t, "Google User", claims.Name)
	assert.Equal(t, "google", claims.Issuer)

	expired, err := IssueAssertion("google", "demo@google.com", "Google User", testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyAssertion(expired, testSecret)
	require.ErrorIs(t, err, ErrInvalidAssertion)

	noEmail, err := IssueAssertion("google", "", "Nobody", testSecret, time.Minute)
	require.NoError(t, err)
	_, err = VerifyAssertion(noEmail, testSecret)
	require.ErrorIs(t, err, ErrInvalidAssertion)

	_, err = VerifyAssertion("not-a-token", testSecret)
	require.ErrorIs(t, err, ErrInvalidAssertion)
}

func TestMockProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockProvider("google", testSecret).Authenticate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
