package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypm/internal/model"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func defaultOpts() Options {
	return Options{Extensions: map[string]bool{".py": true, ".ipynb": true}}
}

func TestScan_FindsEligibleFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "import os")
	writeFile(t, filepath.Join(root, "notes.txt"), "not python")

	res, err := Scan(root, defaultOpts())
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, model.FilePath(filepath.Join(root, "app.py")), res.Files[0])
}

func TestScan_SkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".venv", "lib", "site.py"), "import os")
	writeFile(t, filepath.Join(root, "node_modules", "x.py"), "import os")
	writeFile(t, filepath.Join(root, "src", "main.py"), "import os")

	res, err := Scan(root, defaultOpts())
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, model.FilePath(filepath.Join(root, "src", "main.py")), res.Files[0])
}

func TestScan_DetectsCustomNamedVirtualEnv(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "myenv", "pyvenv.cfg"), "home = /usr")
	writeFile(t, filepath.Join(root, "myenv", "lib", "mod.py"), "import os")
	writeFile(t, filepath.Join(root, "main.py"), "import os")

	res, err := Scan(root, defaultOpts())
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, model.FilePath(filepath.Join(root, "main.py")), res.Files[0])
}

func TestScan_SkipsSymlinkedFilesAndDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.py"), "import os")

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "evil.py"), "import os")
	require.NoError(t, os.Symlink(filepath.Join(outside, "evil.py"), filepath.Join(root, "link.py")))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linkdir")))

	res, err := Scan(root, defaultOpts())
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, model.FilePath(filepath.Join(root, "real.py")), res.Files[0])
}

func TestScan_SkipsOversizedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.py"), "import os")
	writeFile(t, filepath.Join(root, "big.py"), "import os")

	opts := defaultOpts()
	opts.MaxFileSizeBytes = 5 // smaller than either file, so both are skipped
	res, err := Scan(root, opts)
	require.NoError(t, err)
	assert.Len(t, res.Files, 0)
	assert.NotEmpty(t, res.Warnings)
}

func TestScan_ExtraIgnoreDirsGlob(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "vendor_stuff", "x.py"), "import os")
	writeFile(t, filepath.Join(root, "main.py"), "import os")

	opts := defaultOpts()
	opts.ExtraIgnoreDirs = []string{"vendor_*"}
	res, err := Scan(root, opts)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, model.FilePath(filepath.Join(root, "main.py")), res.Files[0])
}

func TestScan_ExtraIgnoreDirsPathPrefix(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "third_party", "vendor", "x.py"), "import os")
	writeFile(t, filepath.Join(root, "vendor", "y.py"), "import os")
	writeFile(t, filepath.Join(root, "main.py"), "import os")

	opts := defaultOpts()
	opts.ExtraIgnoreDirs = []string{"third_party/vendor"}
	res, err := Scan(root, opts)
	require.NoError(t, err)

	var found []string
	for _, f := range res.Files {
		found = append(found, string(f))
	}
	assert.Contains(t, found, filepath.Join(root, "main.py"))
	assert.Contains(t, found, filepath.Join(root, "vendor", "y.py"))
	assert.NotContains(t, found, filepath.Join(root, "third_party", "vendor", "x.py"))
}
