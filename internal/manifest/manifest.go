// Package manifest reads and writes the `[project] dependencies` array of
// a pyproject.toml file, merging a pipeline.Infer result into whatever a
// human already wrote there. Uses the same github.com/BurntSushi/toml
// decode/encode pattern as internal/core/config.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"pypm/internal/model"
	"pypm/internal/shared/util"
)

// Document is the slice of pyproject.toml this package understands: just
// enough of PEP 621's [project] table to read and rewrite the dependency
// list without disturbing anything else a human wrote.
type Document struct {
	Project struct {
		Name         string   `toml:"name"`
		Version      string   `toml:"version"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// Load reads path. A missing file returns a zero-valued Document rather
// than an error, so a caller can merge into a project that has no
// pyproject.toml yet.
func Load(path string) (Document, error) {
	var doc Document
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return doc, nil
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return Document{}, fmt.Errorf("manifest: decode %s: %w", path, err)
	}
	return doc, nil
}

// Merge rewrites doc's dependency list to be the union of its current
// entries and resolved, deduplicated case-insensitively and sorted
// lexicographically so repeated runs produce an identical diff. An existing
// entry is kept as written unless a resolved dependency has the same bare
// name; then the resolved entry replaces it, version specifier and extras
// included.
func Merge(doc Document, resolved []model.Dependency) Document {
	byKey := make(map[string]string, len(doc.Project.Dependencies)+len(resolved))
	for _, existing := range doc.Project.Dependencies {
		byKey[canonicalKey(existing)] = existing
	}
	for _, dep := range resolved {
		byKey[canonicalKey(dep.String())] = dep.String()
	}

	merged := make([]string, 0, len(byKey))
	for _, v := range byKey {
		merged = append(merged, v)
	}
	sort.Slice(merged, func(i, j int) bool {
		return canonicalKey(merged[i]) < canonicalKey(merged[j])
	})

	doc.Project.Dependencies = merged
	return doc
}

// Write persists doc to path, creating any missing parent directories (a
// pyproject.toml living in a project subdirectory pypm doesn't otherwise
// touch). A failure here is fatal to the caller's run; it decides what to
// do with the error.
func Write(path string, doc Document) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("manifest: encode %s: %w", path, err)
	}
	if err := util.WriteFileWithDirs(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// canonicalKey strips a requirement specifier down to its bare,
// lowercased distribution name for dedup comparisons — "Flask[async]>=2"
// and "flask" collide on "flask".
func canonicalKey(requirement string) string {
	name := requirement
	for i, r := range name {
		if r == '[' || r == '=' || r == '>' || r == '<' || r == '!' || r == '~' || r == ' ' {
			name = name[:i]
			break
		}
	}
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
