package service

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAuthNotConfigured means no bearer secret was provided to the server.
	ErrAuthNotConfigured = errors.New("APP_TOKEN not set")
	// ErrInvalidToken means the presented token does not match.
	ErrInvalidToken = errors.New("invalid token")
)

// AuthService validates bearer tokens against a plain secret or a bcrypt hash.
type AuthService struct {
	token []byte
	hash  []byte
}

// NewAuthService creates an AuthService. Either argument may be empty.
func NewAuthService(token, tokenHash string) *AuthService {
	s := &AuthService{}
	if token != "" {
		s.token = []byte(token)
	}
	if tokenHash != "" {
		s.hash = []byte(tokenHash)
	}
	return s
}

// Configured reports whether any secret is available.
func (s *AuthService) Configured() bool {
	return len(s.token) > 0 || len(s.hash) > 0
}

// Validate checks token. It returns ErrAuthNotConfigured before looking at the
// token when no secret is configured.
func (s *AuthService) Validate(token string) error {
	if !s.Configured() {
		return ErrAuthNotConfigured
	}
	if token == "" {
		return ErrInvalidToken
	}
	if len(s.token) > 0 && subtle.ConstantTimeCompare([]byte(token), s.token) == 1 {
		return nil
	}
	if len(s.hash) > 0 && bcrypt.CompareHashAndPassword(s.hash, []byte(token)) == nil {
		return nil
	}
	return ErrInvalidToken
}
