package models

import (
	"errors"
	"strings"
	"time"
)

// Role is the access-level tag carried by a user account.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
)

var (
	ErrUserHandleRequired = errors.New("user handle must not be empty")
	ErrUserRoleInvalid    = errors.New("user role must be ADMIN or ORGANIZER")
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOrganizer
}

type User struct {
	ID           int        `json:"id" db:"id"`
	Handle       string     `json:"handle" db:"handle"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
	Active       bool       `json:"active" db:"active"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Handle) == "" {
		return ErrUserHandleRequired
	}
	if !u.Role.Valid() {
		return ErrUserRoleInvalid
	}
	return nil
}
