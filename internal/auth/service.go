package auth

import (
	"time"

	"task-tracker/internal/cache"
	"task-tracker/internal/models"
)

// Authenticator is the collaborator that gates entry to the task menu.
type Authenticator interface {
	Register(username, password string) bool
	Login(username, password string) (Session, bool)
	Validate(token string) (Session, error)
	Logout(token string)
}

// Session is an authenticated login.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// Service is the stub authenticator: every registration and login succeeds.
// Registered usernames are remembered; passwords are never inspected or stored.
// Sessions are signed tokens whose ids are kept until logout or expiry.
type Service struct {
	tokens   *Tokens
	users    cache.Cache[string, models.User]
	sessions cache.Cache[string, string]
}

// NewService builds the stub authenticator around a token signer.
func NewService(tokens *Tokens) *Service {
	return &Service{
		tokens:   tokens,
		users:    cache.NewTTL[string, models.User](),
		sessions: cache.NewTTL[string, string](),
	}
}

// Register always succeeds. A repeated username keeps its first registration time.
func (s *Service) Register(username, password string) bool {
	if _, ok := s.users.Get(username); !ok {
		s.users.Set(username, models.User{Username: username, RegisteredAt: time.Now()}, 0)
	}
	return true
}

// Login always succeeds and opens a new session.
// It only reports false if a token cannot be signed.
func (s *Service) Login(username, password string) (Session, bool) {
	token, claims, err := s.tokens.Generate(username)
	if err != nil {
		return Session{}, false
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	s.sessions.Set(claims.ID, username, ttl)
	s.sessions.PurgeExpired()
	return Session{Token: token, Username: username, ExpiresAt: claims.ExpiresAt.Time}, true
}

// Validate returns the session for a token that is well-formed, unexpired and not logged out.
func (s *Service) Validate(token string) (Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return Session{}, err
	}
	username, ok := s.sessions.Get(claims.ID)
	if !ok || username != claims.Username {
		return Session{}, ErrInvalidToken
	}
	return Session{Token: token, Username: username, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout ends the session carried by token. Unknown tokens are ignored.
func (s *Service) Logout(token string) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return
	}
	s.sessions.Delete(claims.ID)
}

// User returns a registered user.
func (s *Service) User(username string) (models.User, bool) {
	return s.users.Get(username)
}

// ActiveSessions returns the number of open sessions.
func (s *Service) ActiveSessions() int {
	return s.sessions.Len()
}

var _ Authenticator = (*Service)(nil)
