// Package credstore persists the single "email:password" credential
// string, the client-side equivalent of the web app's local storage key.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound means no credentials are stored: the user is logged out.
var ErrNotFound = errors.New("no stored credentials")

type Store struct {
	path string
}

// New places the credential file under the user config dir.
func New() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return NewWithPath(filepath.Join(dir, "fasalmitra", "credentials")), nil
}

func NewWithPath(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(credentials string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(credentials), 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}
	credentials := strings.TrimSpace(string(data))
	if credentials == "" {
		return "", ErrNotFound
	}
	return credentials, nil
}

func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
