// Package config loads pypm.toml and resolves it into the Options bag the
// core pipeline consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk pypm.toml shape.
type Config struct {
	Version  int      `toml:"version"`
	Paths    Paths    `toml:"paths"`
	Scan     Scan     `toml:"scan"`
	Resolve  Resolve  `toml:"resolve"`
	Index    Index    `toml:"index"`
	History  History  `toml:"history"`
	Manifest Manifest `toml:"manifest"`
}

type Paths struct {
	ProjectRoot string `toml:"project_root"`
	CacheDir    string `toml:"cache_dir"`
}

type Scan struct {
	Extensions      []string `toml:"extensions"`
	ExtraIgnoreDirs []string `toml:"extra_ignore_dirs"`
	MaxFileSizeMiB  int      `toml:"max_file_size_mib"`
	ParseWorkers    int      `toml:"parse_workers"`
}

type Resolve struct {
	LookupWorkers int  `toml:"lookup_workers"`
	Offline       bool `toml:"offline"`
	Heuristics    bool `toml:"heuristics"`
}

type Index struct {
	BaseURL           string        `toml:"base_url"`
	RequestTimeout    time.Duration `toml:"request_timeout"`
	RateLimitPerSec   float64       `toml:"rate_limit_per_sec"`
	RateLimitBurst    int           `toml:"rate_limit_burst"`
	MaxRetries        int           `toml:"max_retries"`
	ExistingTTL       time.Duration `toml:"existing_ttl"`
	AbsentTTL         time.Duration `toml:"absent_ttl"`
	MaxResponseBytes  int64         `toml:"max_response_bytes"`
	MaxRedirects      int           `toml:"max_redirects"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

type Manifest struct {
	Path string `toml:"path"`
}

// Defaults returns a Config with every zero-valued field populated.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Paths: Paths{
			CacheDir: ".cache/pypm",
		},
		Scan: Scan{
			Extensions:      []string{".py", ".ipynb"},
			ExtraIgnoreDirs: nil,
			MaxFileSizeMiB:  10,
			ParseWorkers:    0, // 0 means min(NumCPU, 32) at runtime
		},
		Resolve: Resolve{
			LookupWorkers: 64,
			Offline:       false,
			Heuristics:    true,
		},
		Index: Index{
			BaseURL:          "https://pypi.org",
			RequestTimeout:   10 * time.Second,
			RateLimitPerSec:  20,
			RateLimitBurst:   40,
			MaxRetries:       2,
			ExistingTTL:      7 * 24 * time.Hour,
			AbsentTTL:        1 * time.Hour,
			MaxResponseBytes: 5 * 1024 * 1024,
			MaxRedirects:     3,
		},
		History: History{
			Enabled: true,
			DBPath:  "history.db",
		},
		Manifest: Manifest{
			Path: "pyproject.toml",
		},
	}
}

// Load reads path, merging onto Defaults(). Missing files are not an
// error — the caller gets pure defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	d := Defaults()
	if len(cfg.Scan.Extensions) == 0 {
		cfg.Scan.Extensions = d.Scan.Extensions
	}
	if cfg.Scan.MaxFileSizeMiB <= 0 {
		cfg.Scan.MaxFileSizeMiB = d.Scan.MaxFileSizeMiB
	}
	if cfg.Resolve.LookupWorkers <= 0 {
		cfg.Resolve.LookupWorkers = d.Resolve.LookupWorkers
	}
	if cfg.Index.BaseURL == "" {
		cfg.Index.BaseURL = d.Index.BaseURL
	}
	if cfg.Index.RequestTimeout <= 0 {
		cfg.Index.RequestTimeout = d.Index.RequestTimeout
	}
	if cfg.Index.RateLimitPerSec <= 0 {
		cfg.Index.RateLimitPerSec = d.Index.RateLimitPerSec
	}
	if cfg.Index.RateLimitBurst <= 0 {
		cfg.Index.RateLimitBurst = d.Index.RateLimitBurst
	}
	if cfg.Index.MaxRetries < 0 {
		cfg.Index.MaxRetries = d.Index.MaxRetries
	}
	if cfg.Index.ExistingTTL <= 0 {
		cfg.Index.ExistingTTL = d.Index.ExistingTTL
	}
	if cfg.Index.AbsentTTL <= 0 {
		cfg.Index.AbsentTTL = d.Index.AbsentTTL
	}
	if cfg.Index.MaxResponseBytes <= 0 {
		cfg.Index.MaxResponseBytes = d.Index.MaxResponseBytes
	}
	if cfg.Index.MaxRedirects <= 0 {
		cfg.Index.MaxRedirects = d.Index.MaxRedirects
	}
	if cfg.Paths.CacheDir == "" {
		cfg.Paths.CacheDir = d.Paths.CacheDir
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = d.History.DBPath
	}
	if cfg.Manifest.Path == "" {
		cfg.Manifest.Path = d.Manifest.Path
	}
}

// ResolveRelative joins value onto base unless value is already absolute.
// An empty value resolves to base itself.
func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}
