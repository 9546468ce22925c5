package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypm/internal/model"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	doc, err := Load(filepath.Join(t.TempDir(), "pyproject.toml"))
	require.NoError(t, err)
	assert.Empty(t, doc.Project.Dependencies)
}

func TestMerge_DeduplicatesCaseInsensitivelyAndSorts(t *testing.T) {
	doc := Document{}
	doc.Project.Dependencies = []string{"Flask>=2.0", "click"}

	merged := Merge(doc, []model.Dependency{
		{Name: "flask"},
		{Name: "requests"},
	})

	assert.Equal(t, []string{"click", "flask", "requests"}, merged.Project.Dependencies)
}

func TestWrite_ThenLoad_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	doc := Document{}
	doc.Project.Name = "demo"
	doc.Project.Dependencies = []string{"fastapi", "uvicorn"}

	require.NoError(t, Write(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Project.Name)
	assert.Equal(t, []string{"fastapi", "uvicorn"}, loaded.Project.Dependencies)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWrite_CreatesMissingParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "subdir", "pyproject.toml")
	doc := Document{}
	doc.Project.Name = "demo"

	require.NoError(t, Write(path, doc))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
