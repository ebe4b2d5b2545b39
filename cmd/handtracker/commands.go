package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fadedpez/handtracker/internal/config"
	"github.com/fadedpez/handtracker/pkg/db/migrations"
	"github.com/fadedpez/handtracker/pkg/scheduler"
	"github.com/fadedpez/handtracker/pkg/services/importer"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type ImportCmd struct {
	Files []string `arg:"" type:"existingfile" help:"JSON hand files to import"`
}

func (c *ImportCmd) Run(a *app) error {
	svc, repo, _, err := a.importer()
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()
	for _, path := range c.Files {
		batch, err := svc.ImportFile(ctx, path)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d imported, %d duplicates, %d quarantined (batch %s)\n",
			path, batch.Imported, batch.Duplicates, batch.Quarantined, batch.ID)
	}
	return nil
}

type WatchCmd struct {
	Once bool `help:"Sweep the inbox once and exit"`
}

func (c *WatchCmd) Run(a *app) error {
	svc, repo, quarantine, err := a.importer()
	if err != nil {
		return err
	}
	defer repo.Close()

	inbox := importer.NewInbox(svc, a.cfg.InboxDir)
	if c.Once {
		processed, err := inbox.Sweep(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Processed %d files from %s\n", processed, a.cfg.InboxDir)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := scheduler.NewWatcher(scheduler.NewScheduler(nil, a.log), inbox, quarantine, scheduler.WatchConfig{
		Interval:      a.cfg.WatchInterval,
		QuarantineAge: a.cfg.QuarantineMaxAge,
	})
	a.log.Info("Watching %s every %s", a.cfg.InboxDir, a.cfg.WatchInterval)
	watcher.Start(ctx)

	<-ctx.Done()
	watcher.Stop()
	return nil
}

type ShowCmd struct {
	ID int64 `arg:"" help:"Hand ID"`
}

func (c *ShowCmd) Run(a *app) error {
	repo, err := a.openBaseRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	records, err := repo.GetHand(context.Background(), c.ID)
	if err != nil {
		return err
	}
	return printJSON(records)
}

type ListCmd struct {
	Limit int `default:"20" help:"Maximum number of hands"`
}

func (c *ListCmd) Run(a *app) error {
	repo, err := a.openBaseRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	hands, err := repo.ListHands(context.Background(), c.Limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAYED\tTABLE\tWINNER\tPOT")
	for _, h := range hands {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n",
			h.ID, time.Unix(h.Time, 0).Format(time.DateTime), h.TableName, h.Winner, h.Pot)
	}
	return w.Flush()
}

type SearchCmd struct {
	Player string `arg:"" help:"Player name"`
	Limit  int    `default:"20" help:"Maximum number of hands"`
}

func (c *SearchCmd) Run(a *app) error {
	if !a.cfg.SearchEnabled() {
		return fmt.Errorf("search requires ELASTICSEARCH_URL")
	}
	base, err := a.openBaseRepository()
	if err != nil {
		return err
	}
	esRepo, err := a.openSearch(base)
	if err != nil {
		base.Close()
		return err
	}
	defer esRepo.Close()

	summaries, err := esRepo.SearchByPlayer(context.Background(), c.Player, c.Limit)
	if err != nil {
		return err
	}
	return printJSON(summaries)
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(a *app) error {
	var (
		driver  string
		dsn     string
		dialect migrations.Dialect
	)
	switch a.cfg.StorageType {
	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(a.cfg.SQLitePath), 0755); err != nil {
			return fmt.Errorf("error creating database directory: %w", err)
		}
		driver, dsn, dialect = "sqlite3", a.cfg.SQLitePath, migrations.SQLite
	case config.StoragePostgres:
		driver, dsn, dialect = "postgres", a.cfg.PostgresDSN, migrations.Postgres
	default:
		return fmt.Errorf("storage type %q has no schema to migrate", a.cfg.StorageType)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer db.Close()

	applied, err := migrations.NewMigrator(db, dialect).WithLogger(a.log).MigrateUp()
	if err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}
	fmt.Printf("Applied %d migrations\n", applied)
	return nil
}

type NewMigrationCmd struct {
	Description string `arg:"" help:"What the migration does"`
	Dir         string `default:"pkg/db/migrations" help:"Directory holding the per-dialect migration folders"`
	Dialect     string `default:"sqlite" enum:"sqlite,postgres" help:"SQL dialect (sqlite|postgres)"`
}

func (c *NewMigrationCmd) Run(a *app) error {
	dialect := migrations.Dialect(c.Dialect)
	path, err := migrations.CreateMigration(c.Dir, dialect, c.Description, time.Now())
	if err != nil {
		return fmt.Errorf("error creating migration: %w", err)
	}
	if err := appendExamples(path, dialect); err != nil {
		return err
	}

	fmt.Printf("Created migration file: %s\n", path)
	fmt.Println("Edit this file to add your database schema changes.")
	return nil
}

func appendExamples(path string, dialect migrations.Dialect) error {
	examples := sqliteExamples
	if dialect == migrations.Postgres {
		examples = postgresExamples
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening migration file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(examples); err != nil {
		return fmt.Errorf("error writing to migration file: %w", err)
	}
	return nil
}

const sqliteExamples = `-- SQLite examples:

-- CREATE TABLE IF NOT EXISTS table_name (
--   id INTEGER PRIMARY KEY AUTOINCREMENT,
--   hand INTEGER NOT NULL REFERENCES hands(id) ON DELETE CASCADE,
--   created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
-- );
-- ALTER TABLE table_name ADD COLUMN new_column TEXT;
-- CREATE INDEX IF NOT EXISTS idx_table_column ON table_name(column_name);

-- Your migration SQL goes below this line:

`

const postgresExamples = `-- PostgreSQL examples:

-- CREATE TABLE IF NOT EXISTS table_name (
--   id BIGSERIAL PRIMARY KEY,
--   hand BIGINT NOT NULL REFERENCES hands(id) ON DELETE CASCADE,
--   created_at TIMESTAMPTZ DEFAULT now()
-- );
-- ALTER TABLE table_name ADD COLUMN new_column TEXT;
-- CREATE INDEX IF NOT EXISTS idx_table_column ON table_name(column_name);

-- Your migration SQL goes below this line:

`

type QuarantineCmd struct {
	List    QuarantineListCmd    `cmd:"" help:"List rejected hands"`
	Show    QuarantineShowCmd    `cmd:"" help:"Print a rejected hand"`
	Delete  QuarantineDeleteCmd  `cmd:"" help:"Delete a rejected hand"`
	Cleanup QuarantineCleanupCmd `cmd:"" help:"Delete rejected hands older than QUARANTINE_MAX_AGE"`
}

type QuarantineListCmd struct{}

func (c *QuarantineListCmd) Run(a *app) error {
	quarantine, err := a.openQuarantine()
	if err != nil {
		return err
	}

	entries, err := quarantine.List(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tHAND\tCODE\tSEAT\tREJECTED\tSOURCE")
	for _, e := range entries {
		seat := "-"
		if e.Seat >= 0 {
			seat = fmt.Sprintf("%d", e.Seat)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.HandID, e.Code, seat, e.RejectedAt.Format(time.DateTime), e.Source)
	}
	return w.Flush()
}

type QuarantineShowCmd struct {
	ID string `arg:"" help:"Quarantine entry ID"`
}

func (c *QuarantineShowCmd) Run(a *app) error {
	quarantine, err := a.openQuarantine()
	if err != nil {
		return err
	}

	entry, err := quarantine.Load(context.Background(), c.ID)
	if err != nil {
		return err
	}
	return printJSON(entry)
}

type QuarantineDeleteCmd struct {
	ID string `arg:"" help:"Quarantine entry ID"`
}

func (c *QuarantineDeleteCmd) Run(a *app) error {
	quarantine, err := a.openQuarantine()
	if err != nil {
		return err
	}

	if err := quarantine.Delete(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", c.ID)
	return nil
}

type QuarantineCleanupCmd struct{}

func (c *QuarantineCleanupCmd) Run(a *app) error {
	if a.cfg.QuarantineMaxAge == 0 {
		return fmt.Errorf("QUARANTINE_MAX_AGE is 0, nothing expires")
	}
	quarantine, err := a.openQuarantine()
	if err != nil {
		return err
	}

	removed, err := quarantine.CleanupOld(context.Background(), a.cfg.QuarantineMaxAge)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d entries\n", removed)
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
