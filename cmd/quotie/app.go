package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/graffic/quotie/internal/config"
	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/enrich"
	"github.com/graffic/quotie/internal/journal"
	"github.com/graffic/quotie/internal/notify"
	"github.com/graffic/quotie/internal/nudge"
	"github.com/graffic/quotie/internal/quotes"
	"github.com/graffic/quotie/internal/shared"
	"github.com/graffic/quotie/internal/storage"
	"github.com/graffic/quotie/internal/widget"
)

// app holds every service of the primary process
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *storage.DB
	repo      *quotes.Repository
	service   *journal.Service
	center    *notify.Center
	scheduler *nudge.Scheduler
	settings  *shared.Settings
	reloader  *widget.FileReloader
}

func newApp(ctx context.Context, env string) (*app, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := storage.New(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(notify.Models()...); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	group := storage.NewDefaults(db.DB, storage.SuiteGroup)
	private := storage.NewDefaults(db.DB, storage.SuiteApp)
	loc := time.Local

	settings := shared.NewSettings(group)
	reloader := widget.NewFileReloader(cfg.Storage.ReloadPath(), time.Now)
	publisher := shared.NewPublisher(
		shared.NewDefaultsStore(group, logger),
		reloader,
		settings,
		time.Now,
		logger,
	)

	repo := quotes.NewRepository(quotes.Options{
		Storage:   quotes.NewFileStorage(cfg.Storage.QuotesPath()),
		Logger:    logger,
		Observers: []quotes.Observer{publisher},
	})
	repo.Load(ctx)

	center := notify.NewCenter(db.DB, private, cfg.Telegram.OwnerChatID != 0)
	scheduler := nudge.NewScheduler(center, nudge.NewStateStore(private), nudge.Config{
		Hour:     cfg.Nudge.Hour,
		Minute:   cfg.Nudge.Minute,
		Title:    cfg.Nudge.Title,
		Location: loc,
	}, time.Now, logger)

	// A nil *Client must not end up inside the interface
	var enricher enrich.Enricher
	if client := enrich.NewClient(cfg.Enrichment.BaseURL, cfg.Enrichment.Timeout); client != nil {
		enricher = client
	}

	service := journal.NewService(journal.Options{
		Repository:    repo,
		Hunger:        daily.NewHungerStore(private, time.Now, logger),
		Nudge:         scheduler,
		Publisher:     publisher,
		Enricher:      enricher,
		EnrichTimeout: cfg.Enrichment.Timeout,
		Clock:         time.Now,
		Location:      loc,
		Logger:        logger,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		repo:      repo,
		service:   service,
		center:    center,
		scheduler: scheduler,
		settings:  settings,
		reloader:  reloader,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
