package services

import (
	"errors"
	"fmt"
)

// Error kinds shared by every service. Specific errors below wrap one
// of these so callers can match either the exact failure or its kind
// with errors.Is.
var (
	// ErrValidation: caller-supplied data violates a field-level
	// invariant; raised before any I/O.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate: a uniqueness invariant was violated.
	ErrDuplicate = errors.New("duplicate record")
	// ErrCapacity: a seat ceiling was reached.
	ErrCapacity = errors.New("capacity reached")
	// ErrNotFound: the referenced entity does not exist.
	ErrNotFound = errors.New("requested resource not found")
	// ErrPersistence: the storage operation failed or matched no rows
	// where one was expected.
	ErrPersistence = errors.New("persistence operation failed")
)

var (
	ErrTournamentNotFound         = fmt.Errorf("%w: tournament", ErrNotFound)
	ErrTournamentFull             = fmt.Errorf("%w: tournament is full", ErrCapacity)
	ErrTeamAlreadyRegistered      = fmt.Errorf("%w: team is already registered for this tournament", ErrDuplicate)
	ErrRegistrationCeilingReached = fmt.Errorf("%w: tournament is full (16 teams maximum)", ErrCapacity)
	ErrRegistrationNotFound       = fmt.Errorf("%w: registration", ErrNotFound)

	ErrAssignmentNotFound = fmt.Errorf("%w: assignment", ErrNotFound)

	ErrTeamNotFound   = fmt.Errorf("%w: team", ErrNotFound)
	ErrPlayerNotFound = fmt.Errorf("%w: player", ErrNotFound)
	ErrStaffNotFound  = fmt.Errorf("%w: staff member", ErrNotFound)
	ErrGameNotFound   = fmt.Errorf("%w: game", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("%w: user", ErrNotFound)

	ErrUserHandleTaken = fmt.Errorf("%w: handle is already in use", ErrDuplicate)
	ErrGameInUse       = errors.New("game is used by at least one tournament")

	ErrPasswordRequired   = fmt.Errorf("%w: password must not be empty", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid handle or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// validation wraps a model-level validation failure into the
// ErrValidation kind.
func validation(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// persistence wraps an unexpected storage failure into the
// ErrPersistence kind.
func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
