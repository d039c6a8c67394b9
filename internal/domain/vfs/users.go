package vfs

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Users returns a copy of the users table.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// CurrentUser returns the desktop's logged-in user.
func (s *Store) CurrentUser() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

// LookupUser finds a user by name.
func (s *Store) LookupUser(username string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserLocked(username)
}

// SetCurrentUser switches the desktop user. Unknown names are rejected.
func (s *Store) SetCurrentUser(username string) bool {
	return s.mutate("set_current_user", nil, func(policy) error {
		if _, ok := s.findUserLocked(username); !ok {
			return ErrUnknownUser
		}
		s.current = username
		return nil
	}) == nil
}

// Authenticate checks a password against the stored bcrypt hash.
func (s *Store) Authenticate(username, password string) bool {
	u, ok := s.LookupUser(username)
	if !ok || u.PasswordHash == "" {
		return false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("authentication failed", zap.String("user", username))
		return false
	}
	return true
}

func (s *Store) currentLocked() User {
	if u, ok := s.findUserLocked(s.current); ok {
		return u
	}
	return Nobody
}

func (s *Store) findUserLocked(username string) (User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) knownGroupLocked(group string) bool {
	for _, u := range s.users {
		if u.Group == group {
			return true
		}
	}
	return false
}
