package auth

import (
	"sync"
	"time"

	"rentalmanager/internal/models"
)

// Session is the process wide credential state. It satisfies
// client.TokenSource.
type Session struct {
	mu      sync.RWMutex
	token   string
	expires time.Time
	user    *models.User
	now     func() time.Time
}

func NewSession() *Session {
	return &Session{now: time.Now}
}

// Token returns the bearer token, or "" when none is set or it expired.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expires.IsZero() && !s.now().Before(s.expires) {
		return ""
	}
	return s.token
}

// Set stores a token. A zero expiry never expires.
func (s *Session) Set(token string, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expires = expires
}

func (s *Session) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) Expires() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expires
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expires = time.Time{}
	s.user = nil
}
