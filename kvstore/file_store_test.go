package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	s := NewFileStore(path)

	_, ok, err := s.Get("age-verified")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report ok=false")

	require.NoError(t, s.Set("age-verified", "true"))

	got, ok, err := s.Get("age-verified")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", got)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set("gallery-g1-auth", "true"))
	require.NoError(t, first.Set("age-verified", "true"))

	second := NewFileStore(path)
	got, ok, err := second.Get("gallery-g1-auth")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", got)
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "flags.json")
	s := NewFileStore(path)

	require.NoError(t, s.Set("k", "v"))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewFileStore(path)
	_, _, err := s.Get("age-verified")
	assert.Error(t, err, "corrupt store file should surface as a read error")
}

func TestMemStore_SetGet(t *testing.T) {
	s := NewMemStore()

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v"))
	got, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", got)
}
