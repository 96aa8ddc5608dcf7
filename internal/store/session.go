package store

import (
	"golang.org/x/crypto/bcrypt"

	"medstock/m/domain"
)

// Login selects the roster user with exactly this email if the password matches
// the shared credential. A failed attempt leaves the session signed out.
func (s *Store) Login(email, password string) (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *domain.User
	for i := range s.users {
		if s.users[i].Email == email {
			found = &s.users[i]
			break
		}
	}
	if found == nil {
		s.current = nil
		return domain.User{}, false
	}
	if bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) != nil {
		s.current = nil
		return domain.User{}, false
	}

	u := *found
	s.current = &u
	return u, true
}

// Logout clears the session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Store) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}
