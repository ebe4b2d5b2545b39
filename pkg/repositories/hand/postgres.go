package hand

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/fadedpez/handtracker/pkg/db/migrations"
	"github.com/lib/pq"
)

// pq reports unique_violation with this SQLSTATE
const pgUniqueViolation = "23505"

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	sqlStore
}

// NewPostgresRepository connects to dsn and applies pending migrations
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if _, err := migrations.NewMigrator(db, migrations.Postgres).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &PostgresRepository{sqlStore{db: db, numbered: true, uniqueViolation: isPostgresUniqueViolation}}, nil
}

func isPostgresUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
