package history

import (
	"fmt"
	"math"
	"time"
)

// BuildTrendReport computes per-run deltas and moving averages across a
// series of snapshots.
func BuildTrendReport(snapshots []Snapshot, window time.Duration) (TrendReport, error) {
	if len(snapshots) == 0 {
		return TrendReport{}, fmt.Errorf("no snapshots available")
	}

	points := make([]TrendPoint, 0, len(snapshots))
	for i, current := range snapshots {
		point := TrendPoint{
			Timestamp:       current.Timestamp,
			CommitHash:      current.CommitHash,
			FileCount:       current.FileCount,
			DependencyCount: current.DependencyCount,
			UnresolvedCount: current.UnresolvedCount,
			WarningCount:    current.WarningCount,
			DurationMs:      current.DurationMs,
		}

		if i > 0 {
			prev := snapshots[i-1]
			point.DeltaDependencyCount = current.DependencyCount - prev.DependencyCount
			point.DeltaUnresolvedCount = current.UnresolvedCount - prev.UnresolvedCount
			point.DeltaWarningCount = current.WarningCount - prev.WarningCount
			if prev.DependencyCount > 0 {
				point.DependencyGrowthPct = (float64(point.DeltaDependencyCount) / float64(prev.DependencyCount)) * 100
			}
		}

		avgUnresolved, avgWarnings := movingAverages(snapshots, i, window)
		point.AvgUnresolved = round2(avgUnresolved)
		point.AvgWarnings = round2(avgWarnings)
		point.WindowHours = round2(window.Hours())
		points = append(points, point)
	}

	return TrendReport{
		SchemaVersion: SchemaVersion,
		Since:         snapshots[0].Timestamp,
		Until:         snapshots[len(snapshots)-1].Timestamp,
		Window:        window.String(),
		RunCount:      len(points),
		Points:        points,
	}, nil
}

func movingAverages(snapshots []Snapshot, index int, window time.Duration) (float64, float64) {
	if window <= 0 {
		return float64(snapshots[index].UnresolvedCount), float64(snapshots[index].WarningCount)
	}

	cutoff := snapshots[index].Timestamp.Add(-window)
	var unresolvedTotal, warningTotal int
	count := 0
	for i := index; i >= 0; i-- {
		if snapshots[i].Timestamp.Before(cutoff) {
			break
		}
		unresolvedTotal += snapshots[i].UnresolvedCount
		warningTotal += snapshots[i].WarningCount
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(unresolvedTotal) / float64(count), float64(warningTotal) / float64(count)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
