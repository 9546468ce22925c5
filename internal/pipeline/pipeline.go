// Package pipeline wires the Scanner, Parser, Resolver and Index Client
// into four public entry points: Scan, ParseMany, Resolve and Infer.
// Infer is the single synchronous `infer(root) -> dependencies` call:
// callers never see the parse pool or the lookup pool directly, only a
// blocking call that drains them both. The parse pool uses an unbuffered
// job channel with a context-cancelable producer and a single drain loop.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"

	"pypm/internal/core/config"
	"pypm/internal/indexclient"
	"pypm/internal/model"
	"pypm/internal/observability"
	"pypm/internal/parser"
	"pypm/internal/resolver"
	"pypm/internal/scanner"
	"pypm/internal/shared/util"
)

const (
	maxParseWorkers = 32
	minLookupWorkers = 50
	maxLookupWorkers = 128
)

// Scan walks root and returns every eligible source file.
func Scan(root string, opts config.Options) (scanner.Result, error) {
	return scanner.Scan(root, scannerOptions(opts))
}

// ParseMany runs paths through the Parser on a bounded worker pool sized
// min(NumCPU, 32), consulting and populating the Parse Cache at
// {cache_dir}/parse.json. Suspension only happens in the per-file
// os.ReadFile call; the pool is otherwise CPU-bound.
func ParseMany(ctx context.Context, paths []model.FilePath, opts config.Options) (map[model.FilePath]model.ParseResult, []model.Warning, error) {
	parseCache := parser.NewCache(parseCachePath(opts))
	parseCache.Load()

	p, err := parser.New(parseCache)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize parser: %w", err)
	}

	workers := parseWorkerCount(opts)
	type job struct {
		path model.FilePath
	}
	type outcome struct {
		path    model.FilePath
		result  model.ParseResult
		warning model.Warning
	}

	jobs := make(chan job)
	outcomes := make(chan outcome)

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- job{path: path}:
				observability.ParseQueueDepth.Inc()
			}
		}
	}()

	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := range jobs {
				observability.ParseQueueDepth.Dec()
				result, warn, err := p.ParseFile(j.path)
				if err != nil {
					continue
				}
				select {
				case outcomes <- outcome{path: j.path, result: result, warning: warn}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		for i := 0; i < workers; i++ {
			<-done
		}
		close(outcomes)
	}()

	results := make(map[model.FilePath]model.ParseResult, len(paths))
	var warnings []model.Warning
	for o := range outcomes {
		results[o.path] = o.result
		if o.warning != (model.Warning{}) {
			warnings = append(warnings, o.warning)
		}
	}

	if ctx.Err() != nil {
		parseCache.Discard()
		return results, warnings, ctx.Err()
	}
	if err := parseCache.Save(); err != nil {
		warnings = append(warnings, model.Warning{
			Kind:    model.WarningCacheCorruption,
			Subject: parseCachePath(opts),
			Message: err.Error(),
		})
	}

	return results, warnings, nil
}

// Resolve runs the resolution cascade over moduleNames against
// projectRoot. The lookup pool (opts.LookupWorkers workers, 50 when unset,
// never more than 128 or than the number of remote candidates) lives
// inside resolver.Resolve; this function only constructs and tears down
// the Index Client backing it.
func Resolve(ctx context.Context, moduleNames []string, projectRoot string, opts config.Options) resolver.Result {
	client := newIndexClient(opts)
	defer func() {
		if ctx.Err() != nil {
			client.Discard()
			return
		}
		_ = client.Close()
	}()

	return resolver.Resolve(ctx, moduleNames, client, resolver.Options{
		ProjectRoot:   projectRoot,
		LookupWorkers: lookupWorkerCount(opts),
		Offline:       opts.Offline,
		Heuristics:    opts.Heuristics,
	})
}

// Infer is the single synchronous entry point: scan, parse, then resolve,
// returning the aggregate dependency set plus accumulated warnings and
// per-stage timings. Cancellation via ctx aborts in-flight Index Client
// requests and skips cache persistence; in-flight parses are allowed to
// finish since they are short.
func Infer(ctx context.Context, root string, opts config.Options) (model.InferResult, error) {
	runID := uuid.NewString()
	timings := make(map[string]float64)

	ctx, span := observability.StartStage(ctx, "infer")
	defer span.End()

	_, scanSpan := observability.StartStage(ctx, "scan")
	scanStart := time.Now()
	scanResult, err := Scan(root, opts)
	timings["scan"] = time.Since(scanStart).Seconds()
	observability.StageDuration.WithLabelValues("scan").Observe(timings["scan"])
	scanSpan.End()
	if err != nil {
		return model.InferResult{}, fmt.Errorf("scan %q: %w", root, err)
	}
	observability.FilesScannedTotal.Add(float64(len(scanResult.Files)))
	observability.HeapAllocMB.Set(float64(util.GetHeapAllocMB()))

	parseCtx, parseSpan := observability.StartStage(ctx, "parse")
	parseStart := time.Now()
	parsed, parseWarnings, err := ParseMany(parseCtx, scanResult.Files, opts)
	timings["parse"] = time.Since(parseStart).Seconds()
	observability.StageDuration.WithLabelValues("parse").Observe(timings["parse"])
	parseSpan.End()
	if err != nil {
		return model.InferResult{}, fmt.Errorf("parse: %w", err)
	}

	moduleSet := make(map[string]bool)
	for _, result := range parsed {
		for _, name := range result.AllCandidates() {
			moduleSet[name] = true
		}
	}
	// Sorted so that resolution order (and therefore worker-pool scheduling
	// order for remote lookups) is deterministic across runs over the same
	// input, which keeps timing comparisons meaningful.
	moduleNames := util.SortedStringKeys(moduleSet)

	resolveCtx, resolveSpan := observability.StartStage(ctx, "resolve")
	resolveStart := time.Now()
	resolved := Resolve(resolveCtx, moduleNames, root, opts)
	timings["resolve"] = time.Since(resolveStart).Seconds()
	observability.StageDuration.WithLabelValues("resolve").Observe(timings["resolve"])
	resolveSpan.End()

	observability.DependenciesResolvedTotal.Add(float64(len(resolved.Resolved)))
	observability.ModulesUnresolvedTotal.Add(float64(len(resolved.Unresolved)))
	observability.HeapAllocMB.Set(float64(util.GetHeapAllocMB()))

	warnings := make([]model.Warning, 0, len(scanResult.Warnings)+len(parseWarnings)+len(resolved.Warnings))
	warnings = append(warnings, scanResult.Warnings...)
	warnings = append(warnings, parseWarnings...)
	warnings = append(warnings, resolved.Warnings...)
	for _, w := range warnings {
		observability.WarningsTotal.WithLabelValues(string(w.Kind)).Inc()
	}

	unresolved := append([]string(nil), resolved.Unresolved...)
	sort.Strings(unresolved)

	return model.InferResult{
		Dependencies: resolved.Resolved,
		Unresolved:   unresolved,
		Warnings:     warnings,
		Timings:      timings,
		RunID:        runID,
		FileCount:    len(scanResult.Files),
	}, nil
}

func scannerOptions(opts config.Options) scanner.Options {
	var maxSize int64 = scanner.DefaultMaxFileSizeBytes
	if opts.MaxFileSizeMiB > 0 {
		maxSize = int64(opts.MaxFileSizeMiB) * 1024 * 1024
	}
	return scanner.Options{
		Extensions:       opts.Extensions,
		ExtraIgnoreDirs:  opts.ExtraIgnoreDirs,
		MaxFileSizeBytes: maxSize,
	}
}

func newIndexClient(opts config.Options) *indexclient.Client {
	return indexclient.New(indexclient.Options{
		BaseURL:          opts.IndexBaseURL,
		RequestTimeout:   opts.RequestTimeout,
		MaxRetries:       opts.MaxRetries,
		MaxResponseBytes: opts.MaxResponseBytes,
		MaxRedirects:     opts.MaxRedirects,
		RateLimitPerSec:  opts.RateLimitPerSec,
		RateLimitBurst:   opts.RateLimitBurst,
		ExistingTTL:      opts.ExistingTTL,
		AbsentTTL:        opts.AbsentTTL,
		CachePath:        indexCachePath(opts),
	})
}

func parseWorkerCount(opts config.Options) int {
	if opts.ParseWorkers > 0 {
		return opts.ParseWorkers
	}
	n := runtime.NumCPU()
	if n > maxParseWorkers {
		n = maxParseWorkers
	}
	if n < 1 {
		n = 1
	}
	return n
}

func lookupWorkerCount(opts config.Options) int {
	n := opts.LookupWorkers
	if n <= 0 {
		n = minLookupWorkers
	}
	if n > maxLookupWorkers {
		n = maxLookupWorkers
	}
	return n
}

func indexCachePath(opts config.Options) string {
	return filepath.Join(opts.CacheDir, "cache.json")
}

func parseCachePath(opts config.Options) string {
	return filepath.Join(opts.CacheDir, "parse.json")
}
