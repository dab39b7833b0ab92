package core

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_Lifecycle(t *testing.T) {
	t.Parallel()

	store := NewFileCredentialStore(t.TempDir())

	assert.False(t, store.Exists())
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCredentialNotFound)

	require.NoError(t, store.Create("alice", "$argon2id$fake"))
	assert.True(t, store.Exists())

	cred, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Username)
	assert.Equal(t, "$argon2id$fake", cred.PasswordHash)
}

func TestCredentialStore_SecondCreateRejected(t *testing.T) {
	t.Parallel()

	store := NewFileCredentialStore(t.TempDir())
	require.NoError(t, store.Create("alice", "h1"))

	err := store.Create("bob", "h2")
	assert.ErrorIs(t, err, ErrCredentialExists)

	// The winner's record is untouched.
	cred, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", cred.Username)
}

func TestCredentialStore_ConcurrentCreate(t *testing.T) {
	t.Parallel()

	store := NewFileCredentialStore(t.TempDir())

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Create("user", "hash"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load(), "exactly one concurrent registration may win")
}

func TestCredentialStore_CorruptRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.json"), []byte("{not json"), 0o600))

	store := NewFileCredentialStore(dir)
	_, err := store.Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCredentialNotFound))
}
