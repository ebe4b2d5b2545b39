package main

import (
	"fmt"

	"github.com/fadedpez/handtracker/internal/config"
	"github.com/fadedpez/handtracker/internal/logging"
	"github.com/fadedpez/handtracker/pkg/notify"
	"github.com/fadedpez/handtracker/pkg/repositories/hand"
	"github.com/fadedpez/handtracker/pkg/services/importer"
	"github.com/fadedpez/handtracker/pkg/storage"
	"github.com/fadedpez/handtracker/pkg/storage/file"
)

// app carries what every command needs
type app struct {
	cfg *config.Config
	log *logging.Logger
}

// openBaseRepository opens the relational store selected by STORAGE_TYPE
func (a *app) openBaseRepository() (hand.Repository, error) {
	switch a.cfg.StorageType {
	case config.StorageSQLite:
		a.log.Debug("Opening SQLite repository at %s", a.cfg.SQLitePath)
		return hand.NewSQLiteRepository(a.cfg.SQLitePath)
	case config.StoragePostgres:
		a.log.Debug("Opening PostgreSQL repository")
		return hand.NewPostgresRepository(a.cfg.PostgresDSN)
	case config.StorageMemory:
		a.log.Warn("Using in-memory repository (data will be lost on exit)")
		return hand.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", a.cfg.StorageType)
	}
}

// openRepository opens the base store and, when configured, wraps it with the search index
func (a *app) openRepository() (hand.Repository, error) {
	base, err := a.openBaseRepository()
	if err != nil {
		return nil, err
	}
	if !a.cfg.SearchEnabled() {
		return base, nil
	}

	esRepo, err := a.openSearch(base)
	if err != nil {
		base.Close()
		return nil, err
	}
	return esRepo, nil
}

func (a *app) openSearch(base hand.Repository) (*hand.ElasticsearchRepository, error) {
	a.log.Debug("Indexing hand summaries in Elasticsearch at %s", a.cfg.ElasticsearchURL)
	return hand.NewElasticsearchRepository(base, &hand.ElasticsearchConfig{
		URL:         a.cfg.ElasticsearchURL,
		Username:    a.cfg.ElasticsearchUsername,
		Password:    a.cfg.ElasticsearchPassword,
		IndexPrefix: a.cfg.ElasticsearchIndexPrefix,
	})
}

func (a *app) openQuarantine() (*file.Storage, error) {
	options := storage.NewOptions()
	options.Path = a.cfg.QuarantinePath
	return file.New(options)
}

func (a *app) notifier() (notify.Notifier, error) {
	if !a.cfg.NotificationsEnabled() {
		return notify.Noop{}, nil
	}
	return notify.NewDiscordNotifier(a.cfg.DiscordWebhookID, a.cfg.DiscordWebhookToken)
}

// importer wires the import service; the caller closes the returned repository
func (a *app) importer() (*importer.Service, hand.Repository, *file.Storage, error) {
	repo, err := a.openRepository()
	if err != nil {
		return nil, nil, nil, err
	}
	quarantine, err := a.openQuarantine()
	if err != nil {
		repo.Close()
		return nil, nil, nil, err
	}
	notifier, err := a.notifier()
	if err != nil {
		repo.Close()
		return nil, nil, nil, err
	}

	svc := importer.NewService(repo, quarantine, importer.Config{
		Workers:  a.cfg.ImportWorkers,
		Logger:   a.log,
		Notifier: notifier,
	})
	return svc, repo, quarantine, nil
}
