package models

import (
	"errors"
	"strings"
	"time"
)

// RegistrationStatusPending is the status assigned when the caller
// leaves it blank.
const RegistrationStatusPending = "pending"

var (
	ErrRegistrationTournamentRequired = errors.New("registration tournament reference must be set")
	ErrRegistrationTeamRequired       = errors.New("registration team reference must be set")
)

// Registration links one team to one tournament. The (tournament,
// team) pair is unique. Seed is a tie-break position that every write
// path currently forces to zero.
type Registration struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Status       string    `json:"status" db:"status"`
	Seed         int       `json:"seed" db:"seed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
	Team       *Team       `json:"team,omitempty" db:"-"`
}

// Normalize applies write-time defaults: blank status becomes
// pending, seed is forced to zero.
func (r *Registration) Normalize() {
	if strings.TrimSpace(r.Status) == "" {
		r.Status = RegistrationStatusPending
	}
	r.Seed = 0
}

func (r *Registration) Validate() error {
	if r.TournamentID <= 0 {
		return ErrRegistrationTournamentRequired
	}
	if r.TeamID <= 0 {
		return ErrRegistrationTeamRequired
	}
	return nil
}
