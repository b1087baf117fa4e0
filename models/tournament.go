package models

import (
	"errors"
	"strings"
	"time"
)

// TournamentStatus represents the lifecycle state of a tournament.
type TournamentStatus string

const (
	StatusPreparing  TournamentStatus = "preparing"
	StatusInProgress TournamentStatus = "in progress"
	StatusFinished   TournamentStatus = "finished"
	StatusCancelled  TournamentStatus = "cancelled"
)

var (
	ErrTournamentNameRequired     = errors.New("tournament name must not be empty")
	ErrTournamentFormatRequired   = errors.New("tournament format must not be empty")
	ErrTournamentLocationRequired = errors.New("tournament location must not be empty")
	ErrTournamentStartRequired    = errors.New("tournament start date must be set")
	ErrTournamentEndRequired      = errors.New("tournament end date must be set")
	ErrTournamentEndBeforeStart   = errors.New("tournament end date must not precede start date")
	ErrTournamentMaxTeamsInvalid  = errors.New("tournament max teams must be positive")
	ErrTournamentPrizePoolInvalid = errors.New("tournament prize pool must not be negative")
)

type Tournament struct {
	ID        int              `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	StartDate time.Time        `json:"start_date" db:"start_date"`
	EndDate   time.Time        `json:"end_date" db:"end_date"`
	Location  string           `json:"location" db:"location"`
	Format    string           `json:"format" db:"format"`
	MaxTeams  int              `json:"max_teams" db:"max_teams"`
	Status    TournamentStatus `json:"status" db:"status"`
	PrizePool float64          `json:"prize_pool" db:"prize_pool"`
	GameID    *int             `json:"game_id,omitempty" db:"game_id"`

	// Optional linked entities, populated by explicit reads only.
	Game          *Game          `json:"game,omitempty" db:"-"`
	Registrations []Registration `json:"registrations,omitempty" db:"-"`
	Assignments   []Assignment   `json:"assignments,omitempty" db:"-"`
	Teams         []Team         `json:"teams,omitempty" db:"-"`
}

// NormalizeStatus maps raw status input to one of the four canonical
// values. Blank or unrecognized input falls back to StatusPreparing.
func NormalizeStatus(raw string) TournamentStatus {
	switch TournamentStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusPreparing, StatusInProgress, StatusFinished, StatusCancelled:
		return TournamentStatus(strings.ToLower(strings.TrimSpace(raw)))
	default:
		return StatusPreparing
	}
}

// SetStartDate replaces the start date. It intentionally performs no
// cross-check against an already-set end date; only SetEndDate
// validates the ordering of the pair.
func (t *Tournament) SetStartDate(d time.Time) error {
	if d.IsZero() {
		return ErrTournamentStartRequired
	}
	t.StartDate = d
	return nil
}

// SetEndDate replaces the end date, rejecting dates that precede an
// already-set start date.
func (t *Tournament) SetEndDate(d time.Time) error {
	if d.IsZero() {
		return ErrTournamentEndRequired
	}
	if !t.StartDate.IsZero() && d.Before(t.StartDate) {
		return ErrTournamentEndBeforeStart
	}
	t.EndDate = d
	return nil
}

// Validate checks every field-level invariant required before the
// tournament is persisted.
func (t *Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTournamentNameRequired
	}
	if strings.TrimSpace(t.Format) == "" {
		return ErrTournamentFormatRequired
	}
	if t.StartDate.IsZero() {
		return ErrTournamentStartRequired
	}
	if t.EndDate.IsZero() {
		return ErrTournamentEndRequired
	}
	if t.EndDate.Before(t.StartDate) {
		return ErrTournamentEndBeforeStart
	}
	if strings.TrimSpace(t.Location) == "" {
		return ErrTournamentLocationRequired
	}
	if t.MaxTeams <= 0 {
		return ErrTournamentMaxTeamsInvalid
	}
	if t.PrizePool < 0 {
		return ErrTournamentPrizePoolInvalid
	}
	return nil
}
