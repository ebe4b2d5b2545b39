package migrations

import (
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/fadedpez/handtracker/internal/logging"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/suite"
)

type MigrationsTestSuite struct {
	suite.Suite
	db  *sql.DB
	log *logging.Logger
}

func TestMigrationsSuite(t *testing.T) {
	suite.Run(t, new(MigrationsTestSuite))
}

func (s *MigrationsTestSuite) SetupTest() {
	db, err := sql.Open("sqlite3", filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.db = db
	s.log = logging.NewLoggerWithWriter(io.Discard, logging.ERROR)
}

func (s *MigrationsTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *MigrationsTestSuite) TestBuiltinMigrationsLoadInOrder() {
	for _, dialect := range []Dialect{SQLite, Postgres} {
		migrations, err := NewMigrator(s.db, dialect).LoadMigrations()
		s.Require().NoError(err)
		s.Require().Len(migrations, 2, string(dialect))
		s.Equal("001", migrations[0].Version)
		s.Equal("hand tables", migrations[0].Description)
		s.Equal("002", migrations[1].Version)
		s.Contains(migrations[1].SQL, "import_batches")
	}
}

func (s *MigrationsTestSuite) TestMigrateUpIsIdempotent() {
	migrator := NewMigrator(s.db, SQLite).WithLogger(s.log)

	applied, err := migrator.MigrateUp()
	s.Require().NoError(err)
	s.Equal(2, applied)

	applied, err = migrator.MigrateUp()
	s.Require().NoError(err)
	s.Equal(0, applied, "second run applies nothing")

	for _, table := range []string{"hands", "actions", "blinds", "hole_cards", "import_batches"} {
		var name string
		err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		s.NoError(err, "table %s should exist", table)
	}

	versions, err := migrator.GetAppliedMigrations()
	s.Require().NoError(err)
	s.Equal(map[string]bool{"001": true, "002": true}, versions)
}

func (s *MigrationsTestSuite) TestFailedMigrationRollsBack() {
	fsys := fstest.MapFS{
		"001_good.sql": {Data: []byte(`CREATE TABLE good (id INTEGER);`)},
		"002_bad.sql":  {Data: []byte(`CREATE TABLE oops (`)},
	}
	migrator := NewMigratorFS(s.db, SQLite, fsys).WithLogger(s.log)

	applied, err := migrator.MigrateUp()
	s.Error(err)
	s.Equal(1, applied)

	versions, err := migrator.GetAppliedMigrations()
	s.Require().NoError(err)
	s.Equal(map[string]bool{"001": true}, versions)
}

func (s *MigrationsTestSuite) TestInvalidFilename() {
	fsys := fstest.MapFS{"schema.sql": {Data: []byte(`SELECT 1;`)}}

	_, err := NewMigratorFS(s.db, SQLite, fsys).LoadMigrations()
	s.ErrorContains(err, "invalid migration filename")
}

func (s *MigrationsTestSuite) TestCreateMigration() {
	dir := s.T().TempDir()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first, err := CreateMigration(dir, SQLite, "add players table", now)
	s.Require().NoError(err)
	s.Equal(filepath.Join(dir, "sqlite", "001_add_players_table.sql"), first)

	second, err := CreateMigration(dir, SQLite, "add index", now)
	s.Require().NoError(err)
	s.Equal(filepath.Join(dir, "sqlite", "002_add_index.sql"), second)

	content, err := os.ReadFile(second)
	s.Require().NoError(err)
	s.Contains(string(content), "-- Migration: add index")
	s.Contains(string(content), "2024-05-01T12:00:00Z")

	_, err = CreateMigration(dir, SQLite, "  ", now)
	s.Error(err)
}
