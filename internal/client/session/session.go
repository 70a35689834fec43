// Package session tracks who is logged in on the client side. Credentials
// live in the credential store; the session holds the resolved user and a
// tri-state so callers can tell "still restoring" from "logged out".
package session

import (
	"context"
	"errors"
	"fmt"

	"fasalmitra/internal/client/credstore"
	"fasalmitra/internal/models"
)

// State is the client auth lifecycle.
type State int

const (
	// StateLoading means a startup restore has not finished yet.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// ErrNotAuthenticated guards commands that need a logged-in user.
var ErrNotAuthenticated = errors.New("not logged in")

// backend is the slice of the API client the session needs.
type backend interface {
	Register(ctx context.Context, name, email, password string) (*models.TokenResponse, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.UserResponse, error)
}

// credentialStore persists the "email:password" string between runs.
type credentialStore interface {
	Save(credentials string) error
	Load() (string, error)
	Clear() error
}

type Session struct {
	api   backend
	store credentialStore
	state State
	user  *models.UserInfo
}

func New(api backend, store credentialStore) *Session {
	return &Session{api: api, store: store, state: StateLoading}
}

func (s *Session) State() State { return s.state }

// User returns the logged-in user, or nil.
func (s *Session) User() *models.UserInfo { return s.user }

// Guard returns ErrNotAuthenticated unless a user is logged in.
func (s *Session) Guard() error {
	if s.state != StateAuthenticated {
		return ErrNotAuthenticated
	}
	return nil
}

// Restore validates stored credentials against the server once at startup.
// Any failure, whether missing credentials, a network error or a 401,
// resolves to the logged-out state.
func (s *Session) Restore(ctx context.Context) {
	if _, err := s.store.Load(); err != nil {
		s.logout()
		return
	}
	user, err := s.api.Me(ctx)
	if err != nil {
		s.logout()
		return
	}
	s.user = &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}
	s.state = StateAuthenticated
}

// Login authenticates against the server and, on success, persists the
// credentials and marks the session authenticated.
func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(resp, email, password)
}

// Register creates an account and logs straight into it.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	resp, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.establish(resp, email, password)
}

func (s *Session) establish(resp *models.TokenResponse, email, password string) error {
	if err := s.store.Save(email + ":" + password); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	s.user = &resp.User
	s.state = StateAuthenticated
	return nil
}

// Logout clears the stored credentials and the in-memory user. It never
// talks to the server; Basic auth has no server-side session to revoke.
func (s *Session) Logout() error {
	err := s.store.Clear()
	s.logout()
	if err != nil && !errors.Is(err, credstore.ErrNotFound) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func (s *Session) logout() {
	s.user = nil
	s.state = StateUnauthenticated
}
