package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("cart", []byte(`{"version":1}`)))
	require.NoError(t, s.Set("auth_token", []byte("abc")))

	v, ok, err := s.Get("cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"version":1}`, string(v))

	require.NoError(t, s.Delete("cart"))
	_, ok, err = s.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	v, _, _ = s.Get("auth_token")
	assert.Equal(t, "abc", string(v))
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	exercise(t, NewFile(path))

	// a second handle on the same file sees persisted values
	v, ok, err := NewFile(path).Get("auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", string(v))
}

func TestFileCorruptDocumentReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f := NewFile(path)
	_, ok, err := f.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set("cart", []byte("[]")))
	v, ok, err := f.Get("cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))
}
