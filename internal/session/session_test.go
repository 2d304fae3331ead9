package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	s := NewFileStore(path)

	tok, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, tok, "missing file loads as empty token")

	require.NoError(t, s.Save("abc123"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"access_token": "abc123"`)
	assert.Contains(t, string(data), `"token_type": "Bearer"`)

	tok, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	require.NoError(t, s.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, s.Clear())
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	tok, err := m.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, m.Save("t1"))
	tok, _ = m.Load()
	assert.Equal(t, "t1", tok)

	require.NoError(t, m.Clear())
	tok, _ = m.Load()
	assert.Empty(t, tok)
}
