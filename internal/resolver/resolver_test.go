package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypm/internal/model"
)

type fakeLookuper struct {
	exists map[string]bool
}

func (f *fakeLookuper) Exists(_ context.Context, name string) (bool, error) {
	return f.exists[name], nil
}

func TestResolve_StdlibAndSuspiciousDropped(t *testing.T) {
	root := t.TempDir()

	result := Resolve(context.Background(), []string{"os", "json", "config", "utils"}, nil, Options{
		ProjectRoot: root,
		Offline:     true,
	})

	assert.Empty(t, result.Resolved)
	assert.Empty(t, result.Unresolved)
}

func TestResolve_StaticMapping(t *testing.T) {
	root := t.TempDir()

	result := Resolve(context.Background(), []string{"cv2", "yaml"}, nil, Options{
		ProjectRoot: root,
		Offline:     true,
	})

	names := depNames(result.Resolved)
	assert.Contains(t, names, "opencv-python")
	assert.Contains(t, names, "PyYAML")
}

func TestResolve_BundledIndex(t *testing.T) {
	root := t.TempDir()

	result := Resolve(context.Background(), []string{"requests", "Ujson"}, nil, Options{
		ProjectRoot: root,
		Offline:     true,
	})

	names := depNames(result.Resolved)
	assert.Contains(t, names, "requests")
	assert.Contains(t, names, "ujson")
}

func TestResolve_LocalModuleFilter(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "mypkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "mypkg", "__init__.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "helpers.py"), nil, 0o644))

	result := Resolve(context.Background(), []string{"mypkg", "helpers"}, nil, Options{
		ProjectRoot: root,
		Offline:     true,
	})

	assert.Empty(t, result.Resolved)
	assert.Empty(t, result.Unresolved)
}

func TestResolve_RemoteLookupVariants(t *testing.T) {
	root := t.TempDir()
	lookup := &fakeLookuper{exists: map[string]bool{"weird-widget": true}}

	result := Resolve(context.Background(), []string{"weird_widget"}, lookup, Options{
		ProjectRoot:   root,
		LookupWorkers: 4,
	})

	names := depNames(result.Resolved)
	assert.Contains(t, names, "weird-widget")
	assert.Empty(t, result.Unresolved)
}

func TestResolve_RemoteLookupUnresolved(t *testing.T) {
	root := t.TempDir()
	lookup := &fakeLookuper{exists: map[string]bool{}}

	result := Resolve(context.Background(), []string{"totally_unknown_thing"}, lookup, Options{
		ProjectRoot:   root,
		LookupWorkers: 4,
	})

	assert.Empty(t, result.Resolved)
	assert.Contains(t, result.Unresolved, "totally_unknown_thing")
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, model.WarningAbsent, result.Warnings[0].Kind)
}

func TestResolve_OfflineSkipsRemoteLookup(t *testing.T) {
	root := t.TempDir()
	lookup := &fakeLookuper{exists: map[string]bool{"totally_unknown_thing": true}}

	result := Resolve(context.Background(), []string{"totally_unknown_thing"}, lookup, Options{
		ProjectRoot: root,
		Offline:     true,
	})

	assert.Empty(t, result.Resolved)
	assert.Contains(t, result.Unresolved, "totally_unknown_thing")
}

func TestResolve_FrameworkExtras(t *testing.T) {
	root := t.TempDir()

	result := Resolve(context.Background(), []string{"fastapi"}, nil, Options{
		ProjectRoot: root,
		Offline:     true,
	})

	names := depNames(result.Resolved)
	assert.Contains(t, names, "fastapi")
	assert.Contains(t, names, "uvicorn")
}

func TestResolve_DedupeCaseInsensitiveAndSorted(t *testing.T) {
	root := t.TempDir()

	result := Resolve(context.Background(), []string{"requests", "Flask"}, nil, Options{
		ProjectRoot: root,
		Offline:     true,
	})

	names := depNames(result.Resolved)
	assert.True(t, len(names) >= 2)
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, lowerStr(names[i-1]), lowerStr(names[i]))
	}
}

func depNames(deps []model.Dependency) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = string(d.Name)
	}
	return out
}

func lowerStr(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
