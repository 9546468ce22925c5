// Package scanner implements a filtered, symlink-safe directory walk that
// yields eligible source file paths in no particular order, skipping
// virtual environments, VCS directories, build caches, and anything over
// the size cap.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"pypm/internal/model"
	"pypm/internal/shared/util"
)

// DefaultMaxFileSizeBytes is the hard cap: files larger than this are
// never opened for parsing.
const DefaultMaxFileSizeBytes = 10 * 1024 * 1024

// ignoredDirNames is the literal set of directory names the walk skips.
var ignoredDirNames = map[string]bool{
	"venv": true, ".venv": true, "env": true, ".env": true, "virtualenv": true,
	"node_modules": true, "dist": true, "build": true, ".tox": true, ".nox": true,
	".eggs": true, ".mypy_cache": true, ".ruff_cache": true, ".pytest_cache": true,
	".git": true, ".hg": true, ".svn": true,
	".idea": true, ".vscode": true,
	".terraform": true, ".serverless": true,
}

// Options configures a single scan. ExtraIgnoreDirs are matched against a
// directory's base name as a glob pattern, unless the pattern itself
// contains a path separator, in which case it is matched as a
// root-relative path prefix instead (so "vendor" skips every directory
// named vendor, while "third_party/vendor" skips only that one subtree).
type Options struct {
	Extensions      map[string]bool
	ExtraIgnoreDirs []string
	MaxFileSizeBytes int64
}

// Result is the scanner's output: the eligible files plus any recovered,
// non-fatal diagnostics (unreadable directories, oversized files).
type Result struct {
	Files    []model.FilePath
	Warnings []model.Warning
}

// Scan walks root and returns every eligible source file underneath it.
// Ordering is unspecified — callers that need determinism sort the
// result.
func Scan(root string, opts Options) (Result, error) {
	if opts.MaxFileSizeBytes <= 0 {
		opts.MaxFileSizeBytes = DefaultMaxFileSizeBytes
	}
	extraGlobs := make([]glob.Glob, 0, len(opts.ExtraIgnoreDirs))
	var pathPrefixes []string
	for _, pattern := range opts.ExtraIgnoreDirs {
		if util.ContainsPathSeparator(pattern) {
			if normalized := util.NormalizePatternPath(pattern); normalized != "" {
				pathPrefixes = append(pathPrefixes, normalized)
			}
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		extraGlobs = append(extraGlobs, g)
	}

	s := &scan{
		root:         root,
		opts:         opts,
		extraGlobs:   extraGlobs,
		pathPrefixes: pathPrefixes,
	}
	s.walk(root)
	return Result{Files: s.files, Warnings: s.warnings}, nil
}

type scan struct {
	root         string
	opts         Options
	extraGlobs   []glob.Glob
	pathPrefixes []string
	files        []model.FilePath
	warnings     []model.Warning
}

// walk performs a sequential directory walk, streaming-friendly (a single
// stack, no unbounded recursion depth beyond the tree's own depth).
func (s *scan) walk(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.warnings = append(s.warnings, model.Warning{
			Kind:    model.WarningPermission,
			Subject: dir,
			Message: err.Error(),
		})
		return
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Symlinks are never followed, whether to a file or a directory —
		// entry.Info() (via os.Lstat under ReadDir) never follows the
		// final link, so this check alone enforces "lstat-tested, not
		// stat-tested" for both files and directories.
		if info.Mode()&os.ModeSymlink != 0 {
			continue
		}

		if entry.IsDir() {
			if s.isIgnoredDir(fullPath, entry.Name()) {
				continue
			}
			s.walk(fullPath)
			continue
		}

		if !s.isEligibleFile(entry.Name(), info.Size()) {
			continue
		}

		s.files = append(s.files, model.FilePath(fullPath))
	}
}

func (s *scan) isIgnoredDir(fullPath, name string) bool {
	if ignoredDirNames[name] {
		return true
	}
	if strings.HasSuffix(name, ".egg-info") {
		return true
	}
	for _, g := range s.extraGlobs {
		if g.Match(name) {
			return true
		}
	}
	if len(s.pathPrefixes) > 0 {
		if rel, err := filepath.Rel(s.root, fullPath); err == nil {
			relNormalized := util.NormalizePatternPath(rel)
			for _, prefix := range s.pathPrefixes {
				if util.HasPathPrefix(relNormalized, prefix) {
					return true
				}
			}
		}
	}
	return isVirtualEnvDir(fullPath)
}

// isVirtualEnvDir detects custom-named virtual environments by looking for
// their telltale marker files.
func isVirtualEnvDir(path string) bool {
	if _, err := os.Stat(filepath.Join(path, "pyvenv.cfg")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(path, "bin", "activate")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(path, "Scripts", "activate")); err == nil {
		return true
	}
	return false
}

func (s *scan) isEligibleFile(name string, size int64) bool {
	ext := filepath.Ext(name)
	if len(s.opts.Extensions) > 0 && !s.opts.Extensions[ext] {
		return false
	}
	if size > s.opts.MaxFileSizeBytes {
		s.warnings = append(s.warnings, model.Warning{
			Kind:    model.WarningMalformedInput,
			Subject: name,
			Message: "file exceeds size cap, skipped",
		})
		return false
	}
	return true
}
