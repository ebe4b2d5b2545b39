package main

import (
	"github.com/alecthomas/kong"
	"github.com/fadedpez/handtracker/internal/config"
	"github.com/fadedpez/handtracker/internal/logging"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version      kong.VersionFlag `short:"v" help:"Show version"`
	Import       ImportCmd        `cmd:"" help:"Import hand files"`
	Watch        WatchCmd         `cmd:"" help:"Import files dropped into the inbox directory"`
	Show         ShowCmd          `cmd:"" help:"Print the stored records of a hand"`
	List         ListCmd          `cmd:"" help:"List the most recent stored hands"`
	Search       SearchCmd        `cmd:"" help:"Search indexed hands by player"`
	Migrate      MigrateCmd       `cmd:"" help:"Apply pending database migrations"`
	NewMigration NewMigrationCmd  `cmd:"new-migration" help:"Create a new migration file"`
	Quarantine   QuarantineCmd    `cmd:"" help:"Inspect hands rejected during import"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handtracker"),
		kong.Description("Project parsed poker hands into relational records"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	cfg, err := config.Load()
	ctx.FatalIfErrorf(err)

	level, err := logging.ParseLevel(cfg.LogLevel)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&app{cfg: cfg, log: logging.NewLogger(level)})
	ctx.FatalIfErrorf(err)
}
