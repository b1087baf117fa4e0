package models

import (
	"errors"
	"strings"
	"time"
)

var ErrAssignmentRoleRequired = errors.New("assignment role must not be empty")

// Assignment links a staff member to a tournament for a validity
// window. The (tournament, staff) pair is unique in business usage
// but not constraint-enforced on every path.
type Assignment struct {
	ID           int       `json:"id" db:"id"`
	StaffID      int       `json:"staff_id" db:"staff_id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Role         string    `json:"role" db:"role"`
	StartsAt     time.Time `json:"starts_at" db:"starts_at"`
	EndsAt       time.Time `json:"ends_at" db:"ends_at"`

	Staff      *Staff      `json:"staff,omitempty" db:"-"`
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}

func (a *Assignment) Validate() error {
	if strings.TrimSpace(a.Role) == "" {
		return ErrAssignmentRoleRequired
	}
	return nil
}
