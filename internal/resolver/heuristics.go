// # internal/resolver/heuristics.go
package resolver

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var djangoEngineRe = map[string]*regexp.Regexp{
	"psycopg2-binary": regexp.MustCompile(`['"]ENGINE['"]\s*:\s*['"]django\.db\.backends\.postgresql(_psycopg2)?['"]`),
	"mysqlclient":     regexp.MustCompile(`['"]ENGINE['"]\s*:\s*['"]django\.db\.backends\.mysql['"]`),
	"cx_Oracle":       regexp.MustCompile(`['"]ENGINE['"]\s*:\s*['"]django\.db\.backends\.oracle['"]`),
}

// detectDjangoDatabase scans Django settings files for a configured
// database ENGINE and returns the implied driver distributions, per
// _examples/original_source/src/pypm/heuristics.py's detect_django_database.
func detectDjangoDatabase(root string) map[string]bool {
	deps := make(map[string]bool)

	var settingsFiles []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == "settings.py" || (filepath.Base(filepath.Dir(path)) == "settings" && strings.HasSuffix(name, ".py")) {
			settingsFiles = append(settingsFiles, path)
		}
		return nil
	})

	for _, path := range settingsFiles {
		if strings.Contains(path, "site-packages") || strings.Contains(path, ".venv") {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Debug("failed to read settings file", "path", path, "error", err)
			continue
		}
		text := string(content)

		for dist, re := range djangoEngineRe {
			if re.MatchString(text) {
				deps[dist] = true
				break
			}
		}

		if strings.Contains(text, "django_redis") || strings.Contains(text, "django.core.cache.backends.redis") {
			deps["django-redis"] = true
			deps["redis"] = true
		}
	}

	return deps
}

// runHeuristics applies framework-specific detection beyond the plain
// import graph: Django DB driver inference, FastAPI ASGI-server
// suggestion, and Flask production-server suggestion. Grounded on
// _examples/original_source/src/pypm/heuristics.py's run_heuristics.
func runHeuristics(root string, currentImports map[string]bool) map[string]bool {
	additional := make(map[string]bool)

	if currentImports["django"] {
		for dist := range detectDjangoDatabase(root) {
			additional[dist] = true
		}
	}

	if currentImports["fastapi"] {
		asgiServers := []string{"uvicorn", "hypercorn", "daphne", "gunicorn"}
		hasServer := false
		for _, srv := range asgiServers {
			if currentImports[srv] {
				hasServer = true
				break
			}
		}
		if !hasServer {
			additional["uvicorn"] = true
		}
	}

	if currentImports["flask"] {
		if !currentImports["gunicorn"] && !currentImports["uwsgi"] {
			additional["gunicorn"] = true
		}
	}

	return additional
}
