package models

import (
	"errors"
	"strings"
	"time"
)

var ErrTeamNameRequired = errors.New("team name must not be empty")

type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Tag         string    `json:"tag" db:"tag"`
	Description string    `json:"description" db:"description"`
	Country     string    `json:"country" db:"country"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	// Players is a point-in-time snapshot, populated only by the
	// deep team read.
	Players []Player `json:"players,omitempty" db:"-"`
}

func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTeamNameRequired
	}
	return nil
}
