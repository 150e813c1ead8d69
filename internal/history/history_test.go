package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	h := New(path, 0)
	h.Add("add-contact Ann")
	h.Add("add-contact Ann") // repeat of the last line is ignored
	h.Add("   ")
	h.Add("all")
	require.NoError(t, h.Save())

	h2, err := Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"add-contact Ann", "all"}, h2.Lines())
	assert.False(t, h2.Entries[0].RanAt.IsZero())
}

func TestHistory_NonConsecutiveRepeatsKept(t *testing.T) {
	h := New("", 0)
	h.Add("all")
	h.Add("hello")
	h.Add("all")
	assert.Equal(t, 3, h.Len())
}

func TestHistory_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h := New(path, 3)
	for _, l := range []string{"a", "b", "c", "d", "e"} {
		h.Add(l)
	}
	assert.Equal(t, []string{"c", "d", "e"}, h.Lines())
	require.NoError(t, h.Save())

	small, err := Open(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "e"}, small.Lines())
}

func TestHistory_MissingAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	h, err := Open(filepath.Join(dir, "absent.json"), 0)
	require.NoError(t, err)
	assert.Zero(t, h.Len())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	h, err = Open(bad, 0)
	assert.Error(t, err)
	assert.NotNil(t, h, "a usable history comes back even when loading fails")
}

func TestHistory_InMemory(t *testing.T) {
	h := New("", 0)
	h.Add("hello")
	assert.NoError(t, h.Save())
	assert.NoError(t, h.Load())
	assert.Equal(t, []string{"hello"}, h.Lines())
}
