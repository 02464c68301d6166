package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims is the payload of a provider identity assertion.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IdentityProvider signs a user in with an external account. Authenticate
// returns an HS256 signed assertion carrying IdentityClaims.
type IdentityProvider interface {
	Name() string
	Authenticate(ctx context.Context) (string, error)
}

// IssueAssertion signs an identity assertion valid for ttl.
func IssueAssertion(issuer, email, name string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Name:  name,
	})

	return token.SignedString(secret)
}

// VerifyAssertion checks signature and expiry. Every failure is reported as
// ErrInvalidAssertion.
func VerifyAssertion(tokenString string, secret []byte) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssertion, err)
	}
	if !token.Valid {
		return nil, ErrInvalidAssertion
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidAssertion)
	}

	return claims, nil
}

// MockProvider resolves immediately with a fixed demo account, e.g.
// demo@github.com / "Github User".
type MockProvider struct {
	name   string
	secret []byte
	ttl    time.Duration
}

var _ IdentityProvider = (*MockProvider)(nil)

// MockProviders lists the provider names the CLI offers.
var MockProviders = []string{"google", "github"}

func NewMockProvider(name string, secret []byte) *MockProvider {
	return &MockProvider{name: strings.ToLower(name), secret: secret, ttl: time.Minute}
}

func (p *MockProvider) Name() string { return p.name }

func (p *MockProvider) Authenticate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.name == "" {
		return "", errors.New("provider name is empty")
	}
	email := fmt.Sprintf("demo@%s.com", p.name)
	name := strings.ToUpper(p.name[:1]) + p.name[1:] + " User"
	return IssueAssertion(p.name, email, name, p.secret, p.ttl)
}
