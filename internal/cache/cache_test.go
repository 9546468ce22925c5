package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Exists bool `json:"exists"`
}

func TestDiskCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c := New[record](path, nil)
	c.Load()
	assert.Equal(t, 0, c.Len())

	c.Put("requests", record{Exists: true})
	require.NoError(t, c.Save())

	reloaded := New[record](path, nil)
	reloaded.Load()
	v, ok := reloaded.Get("requests")
	require.True(t, ok)
	assert.True(t, v.Exists)
}

func TestDiskCache_CorruptFileResetsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	c := New[record](path, nil)
	c.Load()
	assert.Equal(t, 0, c.Len())
}

func TestDiskCache_InvalidEntriesDroppedSilently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	raw := `{"version":1,"entries":{"good":{"exists":true},"bad":{"exists":false}}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	onlyGood := func(r record) bool { return r.Exists }
	c := New[record](path, onlyGood)
	c.Load()
	assert.Equal(t, 1, c.Len(), "only the entry passing the validator survives")
	_, ok := c.Get("bad")
	assert.False(t, ok)

	rejectAll := func(record) bool { return false }
	c2 := New[record](path, rejectAll)
	c2.Load()
	assert.Equal(t, 0, c2.Len())
}

func TestDiskCache_SaveIsNoopWhenNotDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := New[record](path, nil)
	c.Load()
	require.NoError(t, c.Save())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "Save should not create a file when nothing was put")
}

func TestDiskCache_DiscardSkipsPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := New[record](path, nil)
	c.Load()
	c.Put("k", record{Exists: true})
	c.Discard()
	require.NoError(t, c.Save())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDiskCache_SchemaMismatchResetsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	raw := `{"version":99,"entries":{"k":{"exists":true}}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	c := New[record](path, nil)
	c.Load()
	assert.Equal(t, 0, c.Len())
}
