// Package session holds the signed-in operator of the running
// application. The application is single-operator: there is exactly
// one slot, and signing in replaces whoever held it.
package session

import (
	"sync"

	"github.com/livetournois/tournament-manager/models"
)

// Session is the explicit, injectable replacement for a global
// current-user singleton. Construct one per application instance and
// pass it to whatever needs to know who is signed in.
type Session struct {
	mu   sync.RWMutex
	user *models.User
}

func New() *Session {
	return &Session{}
}

// Login places the user in the slot, replacing any previous holder.
func (s *Session) Login(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Current returns the signed-in user, or nil when nobody is.
func (s *Session) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.Current() != nil
}

func (s *Session) IsAdmin() bool {
	user := s.Current()
	return user != nil && user.Role == models.RoleAdmin
}

func (s *Session) IsOrganizer() bool {
	user := s.Current()
	return user != nil && user.Role == models.RoleOrganizer
}

// Can reports whether the signed-in user holds the capability. Nobody
// signed in means no capability at all.
func (s *Session) Can(capability Capability) bool {
	user := s.Current()
	if user == nil {
		return false
	}
	return grants[user.Role][capability]
}
