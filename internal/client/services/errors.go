package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidAssertion   = errors.New("invalid identity assertion")
)
