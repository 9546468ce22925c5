package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypm/internal/model"
)

func TestCache_PutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parse.json")
	c := NewCache(path)
	c.Load()

	fp := model.FileFingerprint{Path: "a.py", SizeBytes: 10, ModTimeNanos: 123}
	c.Put(fp, model.ParseResult{Runtime: []string{"requests"}})

	got, ok := c.Get(fp)
	require.True(t, ok)
	assert.Equal(t, []string{"requests"}, got.Runtime)
}

func TestCache_DifferentMtimeIsDifferentKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parse.json")
	c := NewCache(path)
	c.Load()

	fp1 := model.FileFingerprint{Path: "a.py", SizeBytes: 10, ModTimeNanos: 123}
	fp2 := model.FileFingerprint{Path: "a.py", SizeBytes: 10, ModTimeNanos: 456}
	c.Put(fp1, model.ParseResult{Runtime: []string{"requests"}})

	_, ok := c.Get(fp2)
	assert.False(t, ok)
}

func TestCache_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parse.json")
	c := NewCache(path)
	c.Load()
	fp := model.FileFingerprint{Path: "a.py", SizeBytes: 1, ModTimeNanos: 1}
	c.Put(fp, model.ParseResult{Runtime: []string{"flask"}})
	require.NoError(t, c.Save())

	reloaded := NewCache(path)
	reloaded.Load()
	got, ok := reloaded.Get(fp)
	require.True(t, ok)
	assert.Equal(t, []string{"flask"}, got.Runtime)
}
