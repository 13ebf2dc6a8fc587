package siteservice

import (
	"fmt"

	"github.com/starford/harmoni/internal/apperr"
)

var (
	errInvalidYear  = fmt.Errorf("year out of range: %w", apperr.ErrInvalid)
	errInvalidMonth = fmt.Errorf("month out of range: %w", apperr.ErrInvalid)
)
