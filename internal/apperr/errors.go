// Package apperr holds the sentinel errors shared by the service, HTTP and MCP layers.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalid       = errors.New("invalid input")
	ErrUnavailable   = errors.New("unavailable")
)
