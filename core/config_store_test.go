package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_EnsureDefaults(t *testing.T) {
	t.Parallel()

	store := NewFileConfigStore(t.TempDir())
	require.NoError(t, store.Ensure())

	cfg, err := store.Current()
	require.NoError(t, err)
	assert.True(t, cfg.SecureCookie, "default must be secure")
}

func TestConfigStore_EditTakesEffectWithoutRestart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileConfigStore(dir)
	require.NoError(t, store.Ensure())

	cfg, err := store.Current()
	require.NoError(t, err)
	require.True(t, cfg.SecureCookie)

	// Edit the file behind the store's back, as an operator would.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"secureCookie": false}`), 0o644))

	cfg, err = store.Current()
	require.NoError(t, err)
	assert.False(t, cfg.SecureCookie)
}

func TestConfigStore_MissingOrCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileConfigStore(dir)

	_, err := store.Current()
	require.Error(t, err, "missing config must not be guessed")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{"), 0o644))
	_, err = store.Current()
	require.Error(t, err)
}
