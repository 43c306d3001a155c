package domain

import "errors"

// Link errors
var (
	ErrLinkNotFound = errors.New("link not found")
)

// Validation errors surface as ErrValidation wrapped with a field message so
// handlers can answer 400 without inspecting internals.
var ErrValidation = errors.New("validation failed")
