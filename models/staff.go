package models

import (
	"errors"
	"strings"
)

var (
	ErrStaffNameRequired     = errors.New("staff name must not be empty")
	ErrStaffSurnameRequired  = errors.New("staff surname must not be empty")
	ErrStaffEmailRequired    = errors.New("staff email must not be empty")
	ErrStaffFunctionRequired = errors.New("staff function must not be empty")
)

type Staff struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Surname  string `json:"surname" db:"surname"`
	Email    string `json:"email" db:"email"`
	Function string `json:"function" db:"function"`
	Phone    string `json:"phone" db:"phone"`
	UserID   *int   `json:"user_id,omitempty" db:"user_id"`

	// User is an optional enrichment resolved on read; a failed
	// lookup leaves it nil without failing the staff read.
	User        *User        `json:"user,omitempty" db:"-"`
	Assignments []Assignment `json:"assignments,omitempty" db:"-"`
}

func (s *Staff) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrStaffNameRequired
	}
	if strings.TrimSpace(s.Surname) == "" {
		return ErrStaffSurnameRequired
	}
	if strings.TrimSpace(s.Email) == "" {
		return ErrStaffEmailRequired
	}
	if strings.TrimSpace(s.Function) == "" {
		return ErrStaffFunctionRequired
	}
	return nil
}
