package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the process-wide authentication state, explicitly constructed
// and passed to whatever needs it. It mirrors the token store: Login and
// Logout mutate both the in-memory state and the persisted file.
//
// Initialize trusts any stored token without server validation; an invalid
// token is only discovered when the backend answers 401, at which point
// Expire is called.
type Session struct {
	store *Store
	token string
	email string
}

// NewSession creates a Session over the given store. Call Initialize before
// first use.
func NewSession(store *Store) *Session {
	return &Session{store: store}
}

// Initialize restores any persisted token. Storage faults are demoted to
// "logged out" rather than propagated: a broken session file should never
// make the whole tool unusable.
func (s *Session) Initialize() {
	token, email, err := s.store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not restore session (%v); continuing logged out\n", err)
		_ = s.store.Clear()
		return
	}
	s.token = token
	s.email = email
}

// Login persists the token and marks the session authenticated.
func (s *Session) Login(token, email string) error {
	if err := s.store.Save(token, email); err != nil {
		return err
	}
	s.token = token
	s.email = email
	return nil
}

// Logout clears the persisted token and the in-memory state.
func (s *Session) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.token = ""
	s.email = ""
	return nil
}

// Expire drops the session after the backend rejected the token (401).
// Unlike Logout it swallows storage errors: the in-memory state must be
// cleared regardless.
func (s *Session) Expire() {
	_ = s.store.Clear()
	s.token = ""
	s.email = ""
}

// Authenticated reports whether a token is present. Absence of a token is
// the definition of the unauthenticated state.
func (s *Session) Authenticated() bool { return s.token != "" }

// Token returns the bearer token, empty when logged out.
func (s *Session) Token() string { return s.token }

// Email returns the email remembered at login, if any.
func (s *Session) Email() string { return s.email }

// TokenExpiry returns the expiry claim of the stored token, when the token
// happens to be a JWT carrying one. The claim is read without verification;
// it is display-only and never used to gate requests.
func (s *Session) TokenExpiry() (time.Time, bool) {
	if s.token == "" {
		return time.Time{}, false
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
