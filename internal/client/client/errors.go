package client

import "errors"

var (
	ErrNetwork  = errors.New("network error")
	ErrNotFound = errors.New("country not found")
)
