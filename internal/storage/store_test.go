package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureFileStore_SetGetRemove(t *testing.T) {
	store, err := NewSecureFileStore(t.TempDir())
	require.NoError(t, err)

	val, err := store.Get("access_token")
	require.NoError(t, err)
	assert.Empty(t, val, "unset key should read as empty")

	require.NoError(t, store.Set("access_token", "T1"))
	require.NoError(t, store.Set("refresh_token", "R1"))

	val, err = store.Get("access_token")
	require.NoError(t, err)
	assert.Equal(t, "T1", val)

	require.NoError(t, store.Remove("access_token"))

	val, err = store.Get("access_token")
	require.NoError(t, err)
	assert.Empty(t, val)

	val, err = store.Get("refresh_token")
	require.NoError(t, err)
	assert.Equal(t, "R1", val, "removing one key should not disturb others")

	// Removing an absent key is not an error
	require.NoError(t, store.Remove("access_token"))
}

func TestSecureFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSecureFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("access_token", "T1"))

	reopened, err := NewSecureFileStore(dir)
	require.NoError(t, err)

	val, err := reopened.Get("access_token")
	require.NoError(t, err)
	assert.Equal(t, "T1", val)
}

func TestSecureFileStore_EncryptsOnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSecureFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("access_token", "super-secret-token"))

	raw, err := os.ReadFile(filepath.Join(dir, ".credentials"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret-token")
}

func TestSecureFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSecureFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("access_token", "T1"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".credentials"), []byte("not ciphertext"), 0600))

	val, err := store.Get("access_token")
	require.NoError(t, err)
	assert.Empty(t, val, "corrupt store should fail safe to no credential")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Set("k", "v"))

	val, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Remove("k"))

	val, err = store.Get("k")
	require.NoError(t, err)
	assert.Empty(t, val)
}
