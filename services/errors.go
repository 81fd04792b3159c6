package services

import (
	"errors"
	"fmt"
)

// Error categories; handlers pick the HTTP status from them.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrValidationFailed = errors.New("validation failed")
	// ErrPersistence wraps any store failure. The stored state is unchanged from the caller's view.
	ErrPersistence = errors.New("persistence failure")
)

// Not found. Resources owned by someone else are reported as not found too.
var (
	ErrMatchNotFound      = fmt.Errorf("%w: match", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("%w: team", ErrNotFound)
	ErrPlayerNotFound     = fmt.Errorf("%w: player", ErrNotFound)
	ErrTournamentNotFound = fmt.Errorf("%w: tournament", ErrNotFound)
)

// Validation errors
var (
	ErrTeamNameRequired       = fmt.Errorf("%w: team name is required", ErrValidationFailed)
	ErrPlayerNameRequired     = fmt.Errorf("%w: player first name is required", ErrValidationFailed)
	ErrInvalidPosition        = fmt.Errorf("%w: unknown player position", ErrValidationFailed)
	ErrTournamentNameRequired = fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	ErrInvalidDate            = fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidationFailed)
	ErrInvalidLogo            = fmt.Errorf("%w: logo must be a JPEG, PNG or WebP image", ErrValidationFailed)
	ErrNoMatchChanges         = fmt.Errorf("%w: no match fields provided for update", ErrValidationFailed)
)

func persistenceError(op, id string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrPersistence, op, id, err)
}
