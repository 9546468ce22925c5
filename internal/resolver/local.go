// # internal/resolver/local.go
package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// localModules scans the project root non-recursively for sibling
// directories and files that are themselves importable as top-level
// Python modules; this filter runs before stdlib/suspicious/mapping/
// bundled/remote lookup. A directory counts as a package only if it
// contains __init__.py; a bare .py file at the root counts as a module
// by its stem.
func localModules(root string) (map[string]bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	modules := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if _, err := os.Stat(filepath.Join(root, name, "__init__.py")); err == nil {
				modules[name] = true
			}
			continue
		}
		if strings.HasSuffix(name, ".py") {
			modules[strings.TrimSuffix(name, ".py")] = true
		}
	}
	return modules, nil
}
