package config

import "time"

// Options is the in-memory knob bag the Infer/Scan/ParseMany/Resolve entry
// points take as their last argument. It is derived from Config but can also
// be constructed directly by callers (tests, alternate CLIs) that never
// touch a TOML file.
type Options struct {
	Verbose         bool
	Offline         bool
	CacheDir        string
	LookupWorkers   int
	ParseWorkers    int
	Extensions      map[string]bool
	ExtraIgnoreDirs []string
	MaxFileSizeMiB  int
	Heuristics      bool

	IndexBaseURL     string
	RequestTimeout   time.Duration
	RateLimitPerSec  float64
	RateLimitBurst   int
	MaxRetries       int
	ExistingTTL      time.Duration
	AbsentTTL        time.Duration
	MaxResponseBytes int64
	MaxRedirects     int
}

// OptionsFromConfig builds the runtime Options bag from a loaded Config,
// resolving cache_dir against projectRoot.
func OptionsFromConfig(cfg *Config, projectRoot string) Options {
	exts := make(map[string]bool, len(cfg.Scan.Extensions))
	for _, e := range cfg.Scan.Extensions {
		exts[e] = true
	}
	return Options{
		Offline:          cfg.Resolve.Offline,
		CacheDir:         ResolveRelative(projectRoot, cfg.Paths.CacheDir),
		LookupWorkers:    cfg.Resolve.LookupWorkers,
		ParseWorkers:     cfg.Scan.ParseWorkers,
		Extensions:       exts,
		ExtraIgnoreDirs:  cfg.Scan.ExtraIgnoreDirs,
		MaxFileSizeMiB:   cfg.Scan.MaxFileSizeMiB,
		Heuristics:       cfg.Resolve.Heuristics,
		IndexBaseURL:     cfg.Index.BaseURL,
		RequestTimeout:   cfg.Index.RequestTimeout,
		RateLimitPerSec:  cfg.Index.RateLimitPerSec,
		RateLimitBurst:   cfg.Index.RateLimitBurst,
		MaxRetries:       cfg.Index.MaxRetries,
		ExistingTTL:      cfg.Index.ExistingTTL,
		AbsentTTL:        cfg.Index.AbsentTTL,
		MaxResponseBytes: cfg.Index.MaxResponseBytes,
		MaxRedirects:     cfg.Index.MaxRedirects,
	}
}

// DefaultOptions returns Options derived from Defaults() with no project
// root adjustment — convenient for tests and library callers.
func DefaultOptions() Options {
	return OptionsFromConfig(Defaults(), ".")
}
