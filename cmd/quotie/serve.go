package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/graffic/quotie/internal/bot"
	"github.com/graffic/quotie/internal/bot/middleware"
	"github.com/graffic/quotie/internal/journal"
	"github.com/graffic/quotie/internal/notify"
	"github.com/graffic/quotie/internal/quotes"
	"github.com/graffic/quotie/internal/telegram"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram front-end, daily refresher and notification dispatcher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), current)
		},
	}
}

func runServer(ctx context.Context, a *app) error {
	cfg := a.cfg
	logger := a.logger
	logger.Info("starting quotie server", "environment", cfg.Environment)

	if cfg.Telegram.Token == "" {
		return errors.New("telegram.token is required to serve")
	}

	chatFilter := middleware.ChatFilter(middleware.FilterConfig{
		AllowedChatIDs: cfg.AllowedChatIDs,
		OwnerChatID:    cfg.Telegram.OwnerChatID,
		AutoLeave:      cfg.Telegram.AutoLeave,
	}, logger)

	client, err := telegram.NewHTTPClient(cfg.Telegram.Token, telegram.WithMiddlewares(chatFilter))
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	registry := bot.NewRegistry()
	bot.NewHandlers(a.service, quotes.DefaultRandom, logger).Register(registry)
	dispatcher := bot.NewDispatcher(registry, client, logger)
	client.RegisterHandler(dispatcher.HandleUpdate)

	g, ctx := errgroup.WithContext(ctx)

	user, err := client.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify bot: %w", err)
	}

	// Component 1: Bot polling
	g.Go(func() error {
		logger.Info("starting bot polling", "username", user.Username)
		return client.Start(ctx)
	})

	// Component 2: Daily refresher
	refresher := journal.NewRefresher(a.service, journal.RefresherConfig{
		Interval: cfg.Daily.RefreshInterval,
	}, logger)
	g.Go(func() error {
		return refresher.Start(ctx)
	})

	// Component 3: Notification dispatcher
	dispatch := notify.NewDispatcher(a.center, telegram.NewSender(client, cfg.Telegram.OwnerChatID), notify.Config{
		Interval: cfg.Notifications.DispatchInterval,
	}, time.Now, logger)
	g.Go(func() error {
		return dispatch.Start(ctx)
	})

	logger.Info("all components started, waiting for shutdown signal")

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("graceful shutdown completed")
			return nil
		}
		return fmt.Errorf("component error: %w", err)
	}

	logger.Info("application stopped")
	return nil
}
