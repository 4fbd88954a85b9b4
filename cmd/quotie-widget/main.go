package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/graffic/quotie/internal/config"
	"github.com/graffic/quotie/internal/shared"
	"github.com/graffic/quotie/internal/storage"
	"github.com/graffic/quotie/internal/widget"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var env string

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("widget error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaultEnv := os.Getenv("ENV")
	if defaultEnv == "" {
		defaultEnv = "development"
	}

	root := &cobra.Command{
		Use:           "quotie-widget",
		Short:         "Show the Quotie widget",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&env, "env", defaultEnv, "Configuration environment (config/<env>.yaml)")

	var placeholder bool
	render := &cobra.Command{
		Use:   "render",
		Short: "Print the current widget entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(func(cfg *config.Config, p *widget.Provider) error {
				if placeholder {
					printEntry(cmd.OutOrStdout(), p.Placeholder())
					return nil
				}
				printTimeline(cmd.OutOrStdout(), p.Timeline(cmd.Context()))
				return nil
			})
		},
	}
	render.Flags().BoolVar(&placeholder, "placeholder", false, "Print the placeholder entry")

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Re-render whenever the app signals a reload or the day rolls over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProvider(func(cfg *config.Config, p *widget.Provider) error {
				return runWatch(cmd.Context(), cfg, p, cmd.OutOrStdout())
			})
		},
	}

	root.AddCommand(render, watch)
	return root
}

func withProvider(fn func(*config.Config, *widget.Provider) error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// The app may not have created the shared storage yet, so it is opened
	// on demand and retried on every read.
	store := widget.NewLazyStore(func() (shared.Store, io.Closer, error) {
		db, err := storage.OpenReadOnly(&cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		return shared.NewDefaultsStore(storage.NewDefaults(db.DB, storage.SuiteGroup), logger), db, nil
	}, logger)
	defer store.Close()

	return fn(cfg, widget.NewProvider(store, time.Now, time.Local))
}

func runWatch(ctx context.Context, cfg *config.Config, p *widget.Provider, out io.Writer) error {
	watcher, err := widget.NewWatcher(cfg.Storage.ReloadPath(), widget.DefaultDebounce, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to watch reload signal: %w", err)
	}
	defer watcher.Close()

	reload := make(chan struct{}, 1)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watcher.Run(ctx, func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
	})

	g.Go(func() error {
		for {
			timeline := p.Timeline(ctx)
			printTimeline(out, timeline)

			timer := time.NewTimer(time.Until(timeline.RefreshAt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-reload:
				slog.Debug("reloading timeline")
			case <-timer.C:
				slog.Debug("timeline refresh time reached")
			}
			timer.Stop()
		}
	})

	return g.Wait()
}

func printTimeline(out io.Writer, t widget.Timeline) {
	printEntry(out, t.Entry)
	fmt.Fprintf(out, "(next refresh %s)\n\n", t.RefreshAt.Format(time.DateTime))
}

func printEntry(out io.Writer, e widget.Entry) {
	fmt.Fprintln(out, widget.Render(e))
}
