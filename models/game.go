package models

import (
	"errors"
	"strings"
)

var (
	ErrGameNameRequired       = errors.New("game name must not be empty")
	ErrGameReleaseYearInvalid = errors.New("game release year must not be negative")
)

type Game struct {
	ID          int    `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Publisher   string `json:"publisher" db:"publisher"`
	ReleaseYear int    `json:"release_year" db:"release_year"`
	Genre       string `json:"genre" db:"genre"`
	Description string `json:"description" db:"description"`
}

func (g *Game) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrGameNameRequired
	}
	if g.ReleaseYear < 0 {
		return ErrGameReleaseYearInvalid
	}
	return nil
}
