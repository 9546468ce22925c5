package history

import "time"

const SchemaVersion = 1

// Snapshot is one persisted record of a completed infer() run: enough to
// chart dependency-count and warning-count drift over time without
// re-running inference.
type Snapshot struct {
	SchemaVersion   int       `json:"schema_version"`
	Timestamp       time.Time `json:"timestamp"`
	CommitHash      string    `json:"commit_hash,omitempty"`
	CommitTimestamp time.Time `json:"commit_timestamp,omitempty"`
	FileCount       int       `json:"file_count"`
	DependencyCount int       `json:"dependency_count"`
	UnresolvedCount int       `json:"unresolved_count"`
	WarningCount    int       `json:"warning_count"`
	ParseCacheHits  int       `json:"parse_cache_hits"`
	LookupCount     int       `json:"lookup_count"`
	DurationMs      int64     `json:"duration_ms"`
}

// TrendPoint is one Snapshot annotated with deltas against the previous
// point in the series.
type TrendPoint struct {
	Timestamp            time.Time `json:"timestamp"`
	CommitHash           string    `json:"commit_hash,omitempty"`
	FileCount            int       `json:"file_count"`
	DependencyCount      int       `json:"dependency_count"`
	UnresolvedCount      int       `json:"unresolved_count"`
	WarningCount         int       `json:"warning_count"`
	DurationMs           int64     `json:"duration_ms"`
	DeltaDependencyCount int       `json:"delta_dependency_count"`
	DeltaUnresolvedCount int       `json:"delta_unresolved_count"`
	DeltaWarningCount    int       `json:"delta_warning_count"`
	DependencyGrowthPct  float64   `json:"dependency_growth_pct"`
	AvgUnresolved        float64   `json:"avg_unresolved"`
	AvgWarnings          float64   `json:"avg_warnings"`
	WindowHours          float64   `json:"window_hours"`
}

// TrendReport is a series of TrendPoints over a window, the return value
// of BuildTrendReport.
type TrendReport struct {
	SchemaVersion int          `json:"schema_version"`
	Since         time.Time    `json:"since"`
	Until         time.Time    `json:"until"`
	Window        string       `json:"window"`
	RunCount      int          `json:"run_count"`
	Points        []TrendPoint `json:"points"`
}
