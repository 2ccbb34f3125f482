package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	return s
}

func TestNewStoreCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewStore(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)

	acc, err := s.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "preetha@example.com", acc.Email)
	assert.Equal(t, "jobseeker", acc.Role)

	acc, err = s.Lookup(2)
	require.NoError(t, err)
	assert.Equal(t, "employer", acc.Role)
}

func TestRegisterAssignsNextID(t *testing.T) {
	s := newTestStore(t)

	acc, err := s.Register("Ravi", "ravi@example.com", "secret123", "jobseeker")
	require.NoError(t, err)
	assert.Equal(t, uint(3), acc.ID)
	assert.NotEqual(t, "secret123", acc.Password) // Stored hashed
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Register("Other", "preetha@example.com", "secret123", "jobseeker")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)

	acc, err := s.Authenticate("preetha@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, uint(1), acc.ID)

	_, err = s.Authenticate("preetha@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate("nobody@example.com", "123456")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLookupMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Lookup(99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewStore(path)
	require.NoError(t, err)

	_, err = s.Update(1, func(a *Account, all []Account) error {
		a.Location = "Chennai"
		a.Skills = []string{"typing", "excel"}
		return nil
	})
	require.NoError(t, err)

	// Reopen the file to prove the change is durable
	reopened, err := NewStore(path)
	require.NoError(t, err)
	acc, err := reopened.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "Chennai", acc.Location)
	assert.Equal(t, []string{"typing", "excel"}, acc.Skills)
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewStore(path)
	require.NoError(t, err)

	_, err = s.Register("Ravi", "ravi@example.com", "secret123", "jobseeker")
	require.NoError(t, err)

	// The rename completed: only the store file remains and it is readable
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
	reopened, err := NewStore(path)
	require.NoError(t, err)
	_, err = reopened.Lookup(3)
	require.NoError(t, err)
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update(1, func(a *Account, all []Account) error {
		for _, other := range all {
			if other.Email == "employer@example.com" && other.ID != a.ID {
				return ErrDuplicateEmail
			}
		}
		a.Email = "employer@example.com"
		return nil
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// The rejected change must not have been written
	acc, err := s.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "preetha@example.com", acc.Email)
}
