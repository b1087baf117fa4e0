package models

import "time"

type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Surname   string    `json:"surname" db:"surname"`
	Handle    string    `json:"handle" db:"handle"`
	BirthDate time.Time `json:"birth_date" db:"birth_date"`
	TeamID    *int      `json:"team_id,omitempty" db:"team_id"`

	// Team is a weak back-reference. Roster reads leave it unset to
	// avoid recursive loading; callers must not rely on it being
	// populated there.
	Team *Team `json:"team,omitempty" db:"-"`
}
