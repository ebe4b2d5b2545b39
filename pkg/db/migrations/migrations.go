package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fadedpez/handtracker/internal/logging"
)

// Dialect selects the SQL flavour of a migration set
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var embedded embed.FS

// Builtin returns the migrations shipped with the binary for a dialect
func Builtin(dialect Dialect) fs.FS {
	sub, err := fs.Sub(embedded, string(dialect))
	if err != nil {
		// the embed pattern guarantees both directories exist
		panic(err)
	}
	return sub
}

// Migration represents a database migration
type Migration struct {
	Version     string
	Description string
	SQL         string
}

// Migrator handles database migrations
type Migrator struct {
	db      *sql.DB
	fsys    fs.FS
	dialect Dialect
	log     *logging.Logger
}

// NewMigrator creates a migrator applying the builtin migrations of dialect
func NewMigrator(db *sql.DB, dialect Dialect) *Migrator {
	return NewMigratorFS(db, dialect, Builtin(dialect))
}

// NewMigratorFS creates a migrator reading migrations from fsys
func NewMigratorFS(db *sql.DB, dialect Dialect, fsys fs.FS) *Migrator {
	return &Migrator{
		db:      db,
		fsys:    fsys,
		dialect: dialect,
		log:     logging.Default,
	}
}

// WithLogger replaces the logger used to report progress
func (m *Migrator) WithLogger(l *logging.Logger) *Migrator {
	m.log = l
	return m
}

// Initialize creates the migrations table if it doesn't exist
func (m *Migrator) Initialize() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version TEXT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

// GetAppliedMigrations returns a map of already applied migrations
func (m *Migrator) GetAppliedMigrations() (map[string]bool, error) {
	rows, err := m.db.Query("SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// LoadMigrations loads all migration files, ordered by version
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		content, err := fs.ReadFile(m.fsys, entry.Name())
		if err != nil {
			return nil, err
		}

		// e.g. "001_hand_tables.sql"
		migration, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, err
		}
		migration.SQL = string(content)
		migrations = append(migrations, migration)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func parseMigrationName(name string) (Migration, error) {
	parts := strings.SplitN(strings.TrimSuffix(path.Base(name), ".sql"), "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Migration{}, fmt.Errorf("invalid migration filename: %s", name)
	}
	return Migration{
		Version:     parts[0],
		Description: strings.ReplaceAll(parts[1], "_", " "),
	}, nil
}

func (m *Migrator) recordQuery() string {
	if m.dialect == Postgres {
		return "INSERT INTO migrations (version, description) VALUES ($1, $2)"
	}
	return "INSERT INTO migrations (version, description) VALUES (?, ?)"
}

// ApplyMigration applies a single migration
func (m *Migrator) ApplyMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(migration.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("error applying migration %s: %w", migration.Version, err)
	}

	if _, err := tx.Exec(m.recordQuery(), migration.Version, migration.Description); err != nil {
		tx.Rollback()
		return fmt.Errorf("error recording migration %s: %w", migration.Version, err)
	}

	return tx.Commit()
}

// MigrateUp applies all pending migrations and returns how many ran
func (m *Migrator) MigrateUp() (int, error) {
	if err := m.Initialize(); err != nil {
		return 0, err
	}

	applied, err := m.GetAppliedMigrations()
	if err != nil {
		return 0, err
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, migration := range migrations {
		if applied[migration.Version] {
			m.log.Debug("Migration %s already applied, skipping", migration.Version)
			continue
		}

		m.log.Info("Applying migration %s: %s", migration.Version, migration.Description)
		if err := m.ApplyMigration(migration); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// CreateMigration scaffolds the next migration file for dialect under dir
func CreateMigration(dir string, dialect Dialect, description string, now time.Time) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("migration description is required")
	}

	target := filepath.Join(dir, string(dialect))
	if err := os.MkdirAll(target, 0755); err != nil {
		return "", err
	}

	existing, err := (&Migrator{fsys: os.DirFS(target)}).LoadMigrations()
	if err != nil {
		return "", err
	}

	nextVersion := fmt.Sprintf("%03d", len(existing)+1)
	fileName := fmt.Sprintf("%s_%s.sql", nextVersion, strings.ReplaceAll(description, " ", "_"))
	filePath := filepath.Join(target, fileName)

	content := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", description, now.Format(time.RFC3339))
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", err
	}

	return filePath, nil
}
