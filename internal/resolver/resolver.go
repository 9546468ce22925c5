// # internal/resolver/resolver.go
package resolver

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"pypm/internal/model"
	"pypm/internal/validate"
)

// Lookuper is the subset of the Index Client the Resolver depends on. It is
// defined here, not in the indexclient package, so that this package stays
// free of any transport/cache import.
type Lookuper interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// Options carries the cascade's tunable knobs, a subset of config.Options.
type Options struct {
	ProjectRoot   string
	LookupWorkers int
	Offline       bool
	Heuristics    bool
}

// Result is the return value of Resolve.
type Result struct {
	Resolved   []model.Dependency
	Unresolved []string
	Warnings   []model.Warning
}

// Resolve runs the full cascade (local filter, stdlib filter, suspicious
// filter, static mapping, bundled index, remote lookup), applies framework
// extras, then dedups and sorts. The first filter that matches a name
// decides its fate; remote lookups run on a bounded worker pool and
// results are only visible once every worker has completed.
func Resolve(ctx context.Context, moduleNames []string, lookup Lookuper, opts Options) Result {
	local, err := localModules(opts.ProjectRoot)
	if err != nil {
		local = map[string]bool{}
	}

	unique := dedupeStrings(moduleNames)

	var resolved []model.Dependency
	var unresolved []string
	var warnings []model.Warning
	var remoteCandidates []string

	for _, name := range unique {
		if local[name] {
			continue
		}
		if IsStdlib(name) {
			continue
		}
		if IsSuspicious(name) {
			slog.Debug("dropping suspicious generic module name", "module", name)
			continue
		}
		if mapped, ok := commonMappings[name]; ok {
			resolved = append(resolved, model.Dependency{
				Name:   model.DistributionName(mapped.distribution),
				Extras: mapped.extras,
			})
			continue
		}
		normalized := normalizeDistName(name)
		if bundledPackages[normalized] {
			resolved = append(resolved, model.Dependency{Name: model.DistributionName(normalized)})
			continue
		}
		remoteCandidates = append(remoteCandidates, name)
	}

	if len(remoteCandidates) > 0 {
		if opts.Offline || lookup == nil {
			unresolved = append(unresolved, remoteCandidates...)
		} else {
			rr, ru, rw := resolveRemote(ctx, remoteCandidates, lookup, opts.LookupWorkers)
			resolved = append(resolved, rr...)
			unresolved = append(unresolved, ru...)
			warnings = append(warnings, rw...)
		}
	}

	if opts.Heuristics {
		imports := make(map[string]bool, len(unique))
		for _, n := range unique {
			imports[n] = true
		}
		for dist := range runHeuristics(opts.ProjectRoot, imports) {
			resolved = append(resolved, model.Dependency{Name: model.DistributionName(dist)})
		}
	}

	names := make([]string, len(resolved))
	for i, d := range resolved {
		names[i] = string(d.Name)
	}
	names = applyFrameworkExtras(names)
	for _, n := range names {
		found := false
		for _, d := range resolved {
			if string(d.Name) == n {
				found = true
				break
			}
		}
		if !found {
			resolved = append(resolved, model.Dependency{Name: model.DistributionName(n)})
		}
	}

	resolved = dedupeDependencies(resolved)
	sort.Slice(resolved, func(i, j int) bool {
		return strings.ToLower(string(resolved[i].Name)) < strings.ToLower(string(resolved[j].Name))
	})
	unresolved = dedupeStrings(unresolved)
	sort.Strings(unresolved)

	return Result{Resolved: resolved, Unresolved: unresolved, Warnings: warnings}
}

// remoteOutcome is one worker's verdict on a single candidate name.
type remoteOutcome struct {
	name string
	dep  *model.Dependency
	warn *model.Warning
}

func resolveRemote(ctx context.Context, names []string, lookup Lookuper, workers int) ([]model.Dependency, []string, []model.Warning) {
	if workers <= 0 {
		workers = 50
	}
	if workers > 128 {
		workers = 128
	}
	if workers > len(names) {
		workers = len(names)
	}

	jobs := make(chan string)
	results := make(chan remoteOutcome, len(names))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- lookupVariants(ctx, name, lookup)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, n := range names {
			select {
			case jobs <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var resolved []model.Dependency
	var unresolved []string
	var warnings []model.Warning
	for out := range results {
		if out.dep != nil {
			resolved = append(resolved, *out.dep)
		} else {
			unresolved = append(unresolved, out.name)
		}
		if out.warn != nil {
			warnings = append(warnings, *out.warn)
		}
	}
	return resolved, unresolved, warnings
}

// variantSpellings returns the spellings to probe against the index, in
// priority order: the bare name first, then the name with underscores and
// hyphens swapped (when that differs), then the five conventional
// Python-packaging prefixes/suffixes in a fixed order.
func variantSpellings(name string) []string {
	variants := []string{name}
	if swapped := strings.NewReplacer("_", "-", "-", "_").Replace(name); swapped != name {
		variants = append(variants, swapped)
	}
	return append(variants,
		"python-"+name,
		name+"-python",
		"py"+name,
		name+"py",
		"py-"+name,
	)
}

func lookupVariants(ctx context.Context, name string, lookup Lookuper) remoteOutcome {
	for _, variant := range variantSpellings(name) {
		valid, reason := validate.URLSafe(variant)
		if !valid {
			return remoteOutcome{
				name: name,
				warn: &model.Warning{
					Kind:    model.WarningUnsafeInput,
					Subject: variant,
					Message: reason,
				},
			}
		}
		exists, err := lookup.Exists(ctx, variant)
		if err != nil {
			return remoteOutcome{
				name: name,
				warn: &model.Warning{
					Kind:    model.WarningTransientIO,
					Subject: variant,
					Message: err.Error(),
				},
			}
		}
		if exists {
			return remoteOutcome{name: name, dep: &model.Dependency{Name: model.DistributionName(variant)}}
		}
	}
	return remoteOutcome{
		name: name,
		warn: &model.Warning{
			Kind:    model.WarningAbsent,
			Subject: name,
			Message: "no variant spelling resolved on the index",
		},
	}
}

// normalizeDistName lowercases and hyphen-normalizes a name for bundled
// index lookup.
func normalizeDistName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// dedupeDependencies collapses case-insensitive duplicates on the
// distribution name, preserving the first occurrence's casing.
func dedupeDependencies(deps []model.Dependency) []model.Dependency {
	seen := make(map[string]bool, len(deps))
	out := make([]model.Dependency, 0, len(deps))
	for _, d := range deps {
		key := strings.ToLower(string(d.Name))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
