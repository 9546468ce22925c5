// # cmd/pypm/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	domainerrors "pypm/internal/core/errors"

	"pypm/internal/core/config"
	"pypm/internal/history"
	"pypm/internal/manifest"
	"pypm/internal/model"
	"pypm/internal/pipeline"
)

var (
	configPath   = flag.String("config", "./pypm.toml", "Path to config file")
	offline      = flag.Bool("offline", false, "Skip Index Client network lookups")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	writeOut     = flag.Bool("write", false, "Merge resolved dependencies into the manifest")
	version      = flag.Bool("version", false, "Print version and exit")
	trends       = flag.Bool("trends", false, "Print a trend report from recorded run history instead of inferring")
	trendsSince  = flag.Duration("trends-since", 30*24*time.Hour, "How far back to load history rows for -trends")
	trendsWindow = flag.Duration("trends-window", 7*24*time.Hour, "Moving-average window for -trends")
)

const VERSION = "0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("pypm v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./pypm.toml" {
			cfg, err = config.Load("./pypm.example.toml")
		}
		if err != nil {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		slog.Error("failed to resolve project root", "error", err)
		os.Exit(1)
	}
	if info, statErr := os.Stat(absRoot); statErr != nil || !info.IsDir() {
		fatal := domainerrors.New(domainerrors.CodeNotFound, "project root does not exist").(*domainerrors.DomainError)
		fatal.WithContext(domainerrors.CtxPath, absRoot)
		slog.Error("fatal", "error", fatal)
		os.Exit(1)
	}

	if *trends {
		if err := printTrendReport(cfg, absRoot, *trendsSince, *trendsWindow); err != nil {
			slog.Error("failed to build trend report", "error", err)
			os.Exit(1)
		}
		return
	}

	opts := config.OptionsFromConfig(cfg, absRoot)
	if *offline {
		opts.Offline = true
	}
	opts.Verbose = *verbose

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	result, err := pipeline.Infer(ctx, absRoot, opts)
	if err != nil {
		slog.Error("inference failed", "error", err)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		slog.Warn(w.Message, "kind", w.Kind, "subject", w.Subject)
	}

	fmt.Printf("resolved %d dependencies, %d unresolved (run %s)\n",
		len(result.Dependencies), len(result.Unresolved), result.RunID)
	for _, d := range result.Dependencies {
		fmt.Printf("  %s\n", d.String())
	}
	if len(result.Unresolved) > 0 {
		fmt.Println("unresolved:")
		for _, name := range result.Unresolved {
			fmt.Printf("  %s\n", name)
		}
	}

	if *writeOut {
		manifestPath := config.ResolveRelative(absRoot, cfg.Manifest.Path)
		doc, err := manifest.Load(manifestPath)
		if err != nil {
			slog.Error("failed to load manifest", "error", err)
			os.Exit(1)
		}
		doc = manifest.Merge(doc, result.Dependencies)
		if err := manifest.Write(manifestPath, doc); err != nil {
			fatal := domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to write manifest").(*domainerrors.DomainError)
			fatal.WithContext(domainerrors.CtxPath, manifestPath)
			slog.Error("fatal", "error", fatal)
			os.Exit(1)
		}
	}

	if cfg.History.Enabled {
		if err := recordHistory(cfg, absRoot, result.FileCount, result, time.Since(start)); err != nil {
			slog.Warn("failed to record run history", "error", err)
		}
	}
}

func recordHistory(cfg *config.Config, projectRoot string, fileCount int, result model.InferResult, elapsed time.Duration) error {
	dbPath := config.ResolveRelative(projectRoot, cfg.History.DBPath)
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	commitHash, commitTime := history.ResolveGitMetadata(projectRoot)

	return store.SaveSnapshot(history.Snapshot{
		Timestamp:       time.Now().UTC(),
		CommitHash:      commitHash,
		CommitTimestamp: commitTime,
		FileCount:       fileCount,
		DependencyCount: len(result.Dependencies),
		UnresolvedCount: len(result.Unresolved),
		WarningCount:    len(result.Warnings),
		DurationMs:      elapsed.Milliseconds(),
	})
}

// printTrendReport loads recorded snapshots for projectRoot and prints the
// resulting trend report instead of running inference.
func printTrendReport(cfg *config.Config, projectRoot string, since, window time.Duration) error {
	dbPath := config.ResolveRelative(projectRoot, cfg.History.DBPath)
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshots, err := store.LoadSnapshots(time.Now().UTC().Add(-since))
	if err != nil {
		return err
	}

	report, err := history.BuildTrendReport(snapshots, window)
	if err != nil {
		return err
	}

	fmt.Printf("trend report: %d runs from %s to %s (window %s)\n",
		report.RunCount, report.Since.Format(time.RFC3339), report.Until.Format(time.RFC3339), report.Window)
	for _, p := range report.Points {
		fmt.Printf("  %s  deps=%d (%+d)  unresolved=%d (%+d, avg %.2f)  warnings=%d (%+d, avg %.2f)  %dms\n",
			p.Timestamp.Format(time.RFC3339), p.DependencyCount, p.DeltaDependencyCount,
			p.UnresolvedCount, p.DeltaUnresolvedCount, p.AvgUnresolved,
			p.WarningCount, p.DeltaWarningCount, p.AvgWarnings, p.DurationMs)
	}
	return nil
}
