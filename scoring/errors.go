package scoring

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package wraps exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state")
)

// Validation errors: bad input, nothing was changed.
var (
	ErrTieScore         = fmt.Errorf("%w: a set cannot be completed with a tied score", ErrValidation)
	ErrNegativeScore    = fmt.Errorf("%w: scores must not be negative", ErrValidation)
	ErrIrregularScore   = fmt.Errorf("%w: score does not end a set under regulation rules", ErrValidation)
	ErrOwnerRequired    = fmt.Errorf("%w: owner is required", ErrValidation)
	ErrTeamRequired     = fmt.Errorf("%w: team is required", ErrValidation)
	ErrOpponentRequired = fmt.Errorf("%w: opponent is required", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", ErrValidation)
)

// Invalid-state errors: the caller broke the contract of the operation.
var (
	ErrInvalidSlot           = fmt.Errorf("%w: lineup slot must be between 1 and 7", ErrInvalidState)
	ErrMatchCompleted        = fmt.Errorf("%w: match is already completed", ErrInvalidState)
	ErrMatchNotStarted       = fmt.Errorf("%w: match has no sets", ErrInvalidState)
	ErrNoActiveSet           = fmt.Errorf("%w: match has no set in progress", ErrInvalidState)
	ErrSetIndexOutOfRange    = fmt.Errorf("%w: set index out of range", ErrInvalidState)
	ErrSetNotCompleted       = fmt.Errorf("%w: set is not completed", ErrInvalidState)
	ErrSetAlreadyCompleted   = fmt.Errorf("%w: lineup of a completed set cannot be changed", ErrInvalidState)
	ErrSourceSetNotCompleted = fmt.Errorf("%w: lineup can only be copied from a completed set", ErrInvalidState)
	ErrSameSet               = fmt.Errorf("%w: source and target set are the same", ErrInvalidState)
)
