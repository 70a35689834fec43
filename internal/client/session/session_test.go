package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fasalmitra/internal/client/credstore"
	"fasalmitra/internal/models"
)

type stubBackend struct {
	meResp   *models.UserResponse
	meErr    error
	meCalls  int
	loginErr error
}

func (s *stubBackend) Register(ctx context.Context, name, email, password string) (*models.TokenResponse, error) {
	return &models.TokenResponse{User: models.UserInfo{Name: name, Email: email}}, nil
}

func (s *stubBackend) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &models.TokenResponse{User: models.UserInfo{Name: "Ravi", Email: email}}, nil
}

func (s *stubBackend) Me(ctx context.Context) (*models.UserResponse, error) {
	s.meCalls++
	if s.meErr != nil {
		return nil, s.meErr
	}
	return s.meResp, nil
}

type memStore struct {
	value string
	saved bool
}

func (m *memStore) Save(credentials string) error {
	m.value = credentials
	m.saved = true
	return nil
}

func (m *memStore) Load() (string, error) {
	if m.value == "" {
		return "", credstore.ErrNotFound
	}
	return m.value, nil
}

func (m *memStore) Clear() error {
	m.value = ""
	return nil
}

func TestNew_StartsLoading(t *testing.T) {
	s := New(&stubBackend{}, &memStore{})
	assert.Equal(t, StateLoading, s.State())
}

func TestRestore_NoCredentials(t *testing.T) {
	backend := &stubBackend{}
	s := New(backend, &memStore{})

	s.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Zero(t, backend.meCalls, "no network call without stored credentials")
}

func TestRestore_ValidCredentials(t *testing.T) {
	backend := &stubBackend{meResp: &models.UserResponse{ID: "u1", Name: "Ravi", Email: "ravi@example.com"}}
	s := New(backend, &memStore{value: "ravi@example.com:secret1"})

	s.Restore(context.Background())

	assert.Equal(t, StateAuthenticated, s.State())
	require.NotNil(t, s.User())
	assert.Equal(t, "ravi@example.com", s.User().Email)
	assert.Equal(t, 1, backend.meCalls, "restore validates exactly once")
}

func TestRestore_RejectedCredentials(t *testing.T) {
	backend := &stubBackend{meErr: assert.AnError}
	s := New(backend, &memStore{value: "ravi@example.com:stale"})

	s.Restore(context.Background())

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
}

func TestLogin_PersistsCredentials(t *testing.T) {
	store := &memStore{}
	s := New(&stubBackend{}, store)

	require.NoError(t, s.Login(context.Background(), "ravi@example.com", "secret1"))

	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "ravi@example.com:secret1", store.value)
}

func TestLogin_FailureLeavesStoreUntouched(t *testing.T) {
	store := &memStore{}
	s := New(&stubBackend{loginErr: assert.AnError}, store)

	err := s.Login(context.Background(), "ravi@example.com", "wrong")

	assert.Error(t, err)
	assert.False(t, store.saved)
	assert.NotEqual(t, StateAuthenticated, s.State())
}

func TestRegister_LogsIn(t *testing.T) {
	store := &memStore{}
	s := New(&stubBackend{}, store)

	require.NoError(t, s.Register(context.Background(), "Ravi", "ravi@example.com", "secret1"))

	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "ravi@example.com:secret1", store.value)
	assert.Equal(t, "Ravi", s.User().Name)
}

func TestLogout_ClearsEverything(t *testing.T) {
	backend := &stubBackend{meResp: &models.UserResponse{Email: "ravi@example.com"}}
	store := &memStore{value: "ravi@example.com:secret1"}
	s := New(backend, store)
	s.Restore(context.Background())
	require.Equal(t, StateAuthenticated, s.State())

	calls := backend.meCalls
	require.NoError(t, s.Logout())

	assert.Equal(t, StateUnauthenticated, s.State())
	assert.Nil(t, s.User())
	assert.Empty(t, store.value)
	assert.Equal(t, calls, backend.meCalls, "logout is purely local")
	assert.ErrorIs(t, s.Guard(), ErrNotAuthenticated)
}
