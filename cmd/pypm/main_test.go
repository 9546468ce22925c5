// # cmd/pypm/main_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypm/internal/core/config"
	"pypm/internal/model"
)

func TestRecordHistory_WritesRetrievableSnapshot(t *testing.T) {
	projectRoot := t.TempDir()
	cfg := config.Defaults()
	cfg.History.DBPath = "history.db"

	result := model.InferResult{
		Dependencies: []model.Dependency{{Name: "requests"}},
		Unresolved:   []string{"weirdmodule"},
		Warnings:     []model.Warning{{Kind: model.WarningTransientIO, Subject: "x.py"}},
	}

	require.NoError(t, recordHistory(cfg, projectRoot, 3, result, 250*time.Millisecond))

	_, err := os.Stat(filepath.Join(projectRoot, "history.db"))
	require.NoError(t, err)
}

func TestPrintTrendReport_NoSnapshotsReturnsError(t *testing.T) {
	projectRoot := t.TempDir()
	cfg := config.Defaults()
	cfg.History.DBPath = "history.db"

	err := printTrendReport(cfg, projectRoot, 30*24*time.Hour, 7*24*time.Hour)
	assert.Error(t, err)
}

func TestPrintTrendReport_AfterRecordingRunsClean(t *testing.T) {
	projectRoot := t.TempDir()
	cfg := config.Defaults()
	cfg.History.DBPath = "history.db"

	result := model.InferResult{Dependencies: []model.Dependency{{Name: "flask"}}}
	require.NoError(t, recordHistory(cfg, projectRoot, 1, result, time.Second))

	assert.NoError(t, printTrendReport(cfg, projectRoot, 30*24*time.Hour, 7*24*time.Hour))
}
