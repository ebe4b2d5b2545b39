package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadedpez/handtracker/internal/config"
	"github.com/fadedpez/handtracker/internal/logging"
	"github.com/fadedpez/handtracker/pkg/db/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, storageType string) *app {
	t.Helper()
	dir := t.TempDir()
	return &app{
		cfg: &config.Config{
			StorageType:      storageType,
			DataDir:          dir,
			SQLitePath:       filepath.Join(dir, "db", "handtracker.db"),
			InboxDir:         filepath.Join(dir, "inbox"),
			QuarantinePath:   filepath.Join(dir, "quarantine.json"),
			QuarantineMaxAge: time.Hour,
			ImportWorkers:    2,
			WatchInterval:    time.Second,
		},
		log: logging.NewLoggerWithWriter(io.Discard, logging.ERROR),
	}
}

func TestImportThenShow(t *testing.T) {
	a := testApp(t, config.StorageSQLite)

	cmd := &ImportCmd{Files: []string{"../../pkg/handfile/testdata/session.json"}}
	require.NoError(t, cmd.Run(a))

	require.NoError(t, (&ShowCmd{ID: 43}).Run(a))
	require.NoError(t, (&ListCmd{Limit: 5}).Run(a))
	assert.Error(t, (&ShowCmd{ID: 999}).Run(a))
}

func TestWatchOnce(t *testing.T) {
	a := testApp(t, config.StorageMemory)
	require.NoError(t, os.MkdirAll(a.cfg.InboxDir, 0755))

	data, err := os.ReadFile("../../pkg/handfile/testdata/session.json")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(a.cfg.InboxDir, "s.json"), data, 0644))

	require.NoError(t, (&WatchCmd{Once: true}).Run(a))
	assert.FileExists(t, filepath.Join(a.cfg.InboxDir, "done", "s.json"))
}

func TestMigrate(t *testing.T) {
	a := testApp(t, config.StorageSQLite)
	require.NoError(t, (&MigrateCmd{}).Run(a))
	assert.FileExists(t, a.cfg.SQLitePath)

	assert.Error(t, (&MigrateCmd{}).Run(testApp(t, config.StorageMemory)))
}

func TestNewMigrationAddsExamples(t *testing.T) {
	a := testApp(t, config.StorageMemory)
	dir := t.TempDir()

	cmd := &NewMigrationCmd{Description: "add notes", Dir: dir, Dialect: string(migrations.Postgres)}
	require.NoError(t, cmd.Run(a))

	content, err := os.ReadFile(filepath.Join(dir, "postgres", "001_add_notes.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "-- Migration: add notes")
	assert.Contains(t, string(content), "BIGSERIAL")
}

func TestQuarantineCommands(t *testing.T) {
	a := testApp(t, config.StorageMemory)

	require.NoError(t, (&QuarantineListCmd{}).Run(a))
	require.NoError(t, (&QuarantineCleanupCmd{}).Run(a))
	assert.Error(t, (&QuarantineDeleteCmd{ID: "missing"}).Run(a))
	assert.Error(t, (&QuarantineShowCmd{ID: "missing"}).Run(a))
}

func TestSearchRequiresElasticsearch(t *testing.T) {
	assert.Error(t, (&SearchCmd{Player: "Alice"}).Run(testApp(t, config.StorageMemory)))
}
