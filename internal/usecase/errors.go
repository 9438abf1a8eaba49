package usecase

import "errors"

// Sentinel errors for the failure taxonomy. Services wrap these with
// %w and handlers map them to HTTP statuses with errors.Is; anything
// unwrapped is an internal error and crosses the API as a bare 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
