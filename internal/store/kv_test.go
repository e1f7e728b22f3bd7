package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_SetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	kv := NewFileKV(path)

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("a", []byte(`{"x": 1}`)))
	require.NoError(t, kv.Set("b", []byte(`[1,2,3]`)))

	// a fresh handle sees what the first one wrote
	other := NewFileKV(path)
	value, ok, err := other.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"x": 1}`, string(value))

	require.NoError(t, other.Delete("a"))
	require.NoError(t, other.Delete("a"))
	_, ok, err = kv.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	value, ok, err = kv.Get("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[1,2,3]`, string(value))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".bdtax-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileKV_RejectsInvalidJSON(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "state.json"))
	err := kv.Set("a", []byte("{not json"))
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	_, _, err := NewFileKV(path).Get("a")
	assert.ErrorContains(t, err, "failed to parse store")
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set("k", []byte("1")))

	v, ok, err := kv.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", string(v))

	require.NoError(t, kv.Delete("k"))
	_, ok, _ = kv.Get("k")
	assert.False(t, ok)
}
