package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/graffic/quotie/internal/daily"
	"github.com/graffic/quotie/internal/quotes"
	"github.com/graffic/quotie/internal/snacks"
	"github.com/spf13/cobra"
)

var (
	env     string
	current *app
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	// Closed here rather than in a post-run hook, which cobra skips when
	// the command fails
	if current != nil {
		if closeErr := current.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}
	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaultEnv := os.Getenv("ENV")
	if defaultEnv == "" {
		defaultEnv = "development"
	}

	root := &cobra.Command{
		Use:           "quotie",
		Short:         "Quotie keeps a journal of quotes and feeds Memmi",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), env)
			if err != nil {
				return err
			}
			current = a
			// serve runs its own refresher
			if cmd.Name() == "serve" {
				return nil
			}
			return current.service.OnLaunch(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&env, "env", defaultEnv, "Configuration environment (config/<env>.yaml)")

	root.AddCommand(
		newAddCmd(),
		newListCmd(),
		newRecentCmd(),
		newFavoriteCmd(),
		newDeleteCmd(),
		newEditCmd(),
		newResurfaceCmd(),
		newTodayCmd(),
		newHungerCmd(),
		newSnackCmd(),
		newNudgeCmd(),
		newSettingsCmd(),
		newServeCmd(),
	)
	return root
}

func newAddCmd() *cobra.Command {
	var author, source, color, font string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Save a quote and feed Memmi",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := quotes.NewQuote{
				Text:   strings.Join(args, " "),
				Author: author,
				Source: source,
			}
			in.ColorStyle, _ = quotes.ParseColorStyle(color)
			in.FontStyle, _ = quotes.ParseFontStyle(font)

			result, err := current.service.AddQuote(cmd.Context(), in)
			if err != nil && !errors.Is(err, quotes.ErrPersist) {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, quotes.Render(result.Quote, quotes.RenderOptions{IncludeID: true}))
			fmt.Fprintln(out, hungerLine(result.Hunger))
			if result.Reaction != "" {
				fmt.Fprintf(out, "Memmi: %s\n", result.Reaction)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&author, "author", "a", "", "Who said it")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Where it comes from")
	cmd.Flags().StringVar(&color, "color", string(quotes.ColorMint), "Card color (mint, blush, lilac, sky, peach, butter)")
	cmd.Flags().StringVar(&font, "font", string(quotes.FontRounded), "Font style (standard, serif, rounded)")
	return cmd
}

func newListCmd() *cobra.Command {
	var favorites bool
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := current.repo.Search(search)
			if favorites {
				list = onlyFavorites(list)
			}
			printList(cmd, list)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&favorites, "favorites", "f", false, "Only favorites")
	cmd.Flags().StringVarP(&search, "search", "q", "", "Filter by text, author or source")
	return cmd
}

func newRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent [n]",
		Short: "Show the newest quotes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 5
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil || parsed <= 0 {
					return fmt.Errorf("invalid count %q", args[0])
				}
				n = parsed
			}
			printList(cmd, current.repo.Recent(n))
			return nil
		},
	}
}

func newFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle a quote's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := lookup(args[0])
			if err != nil {
				return err
			}
			updated, err := current.repo.ToggleFavorite(cmd.Context(), q.ID)
			if updated != nil {
				fmt.Fprintln(cmd.OutOrStdout(), quotes.Render(*updated, quotes.RenderOptions{IncludeID: true}))
			}
			return err
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := lookup(args[0])
			if err != nil {
				return err
			}
			deleted, err := current.repo.Delete(cmd.Context(), q.ID)
			if deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%s\n", quotes.ShortID(q.ID))
			}
			return err
		},
	}
}

func newEditCmd() *cobra.Command {
	var text, author, source, color, font string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := lookup(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("text") {
				if strings.TrimSpace(text) == "" {
					return errors.New("text cannot be empty")
				}
				q.Text = strings.TrimSpace(text)
			}
			if flags.Changed("author") {
				q.Author = strings.TrimSpace(author)
			}
			if flags.Changed("source") {
				q.Source = strings.TrimSpace(source)
			}
			if flags.Changed("color") {
				style, ok := quotes.ParseColorStyle(color)
				if !ok {
					return fmt.Errorf("unknown color %q", color)
				}
				q.ColorStyle = style
			}
			if flags.Changed("font") {
				style, ok := quotes.ParseFontStyle(font)
				if !ok {
					return fmt.Errorf("unknown font %q", font)
				}
				q.FontStyle = style
			}

			if _, err := current.repo.Update(cmd.Context(), q); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), quotes.Render(q, quotes.RenderOptions{IncludeID: true}))
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New text")
	cmd.Flags().StringVarP(&author, "author", "a", "", "New author")
	cmd.Flags().StringVarP(&source, "source", "s", "", "New source")
	cmd.Flags().StringVar(&color, "color", "", "New card color")
	cmd.Flags().StringVar(&font, "font", "", "New font style")
	return cmd
}

func newResurfaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resurface",
		Short: "Bring back a quote, favorites first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := current.repo.Resurface(cmd.Context())
			if q == nil && err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Your journal is empty.")
				return nil
			}
			if q != nil {
				fmt.Fprintln(cmd.OutOrStdout(), quotes.Render(*q, quotes.RenderOptions{IncludeID: true, IncludeReaction: true}))
			}
			return err
		},
	}
}

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the quote of the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := current.service.QuoteOfTheDay()
			if q == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Your journal is empty.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), quotes.Render(*q, quotes.RenderOptions{IncludeID: true}))
			return nil
		},
	}
}

func newHungerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hunger",
		Short: "Show how hungry Memmi is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := current.service.Hunger(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hungerLine(state))
			fmt.Fprintf(cmd.OutOrStdout(), "Last fed %s\n", state.LastFedDate.Local().Format(time.DateTime))
			return nil
		},
	}
}

func newSnackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snack",
		Short: "Browse and add quotes from the snack library",
	}

	list := &cobra.Command{
		Use:   "list [source]",
		Short: "List snacks, or a random selection without a source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, s := range snacks.Recommended(quotes.DefaultRandom, snacks.RecommendedCount) {
					fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", s.Source, snackLine(s))
				}
				return nil
			}
			src, ok := snacks.ParseSource(args[0])
			if !ok {
				return fmt.Errorf("unknown snack source %q", args[0])
			}
			for i, s := range snacks.BySource(src) {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, snackLine(s))
			}
			return nil
		},
	}

	eat := &cobra.Command{
		Use:   "eat <source> <n>",
		Short: "Add snack n of source to the journal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, ok := snacks.ParseSource(args[0])
			if !ok {
				return fmt.Errorf("unknown snack source %q", args[0])
			}
			pool := snacks.BySource(src)
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > len(pool) {
				return fmt.Errorf("pick a snack between 1 and %d", len(pool))
			}

			result, err := current.service.AddSnack(cmd.Context(), pool[n-1].NewQuote())
			if err != nil && !errors.Is(err, quotes.ErrPersist) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), quotes.Render(result.Quote, quotes.RenderOptions{IncludeID: true}))
			fmt.Fprintln(cmd.OutOrStdout(), hungerLine(result.Hunger))
			return err
		},
	}

	cmd.AddCommand(list, eat)
	return cmd
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	widgetDaily := &cobra.Command{
		Use:   "widget-daily [on|off]",
		Short: "Show the quote of the day on the widget",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				enabled, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				if err := current.settings.SetDailyQuotesEnabled(ctx, enabled); err != nil {
					return err
				}
				if err := current.service.UpdateWidgetQuoteOfTheDay(ctx); err != nil {
					return err
				}
			}
			enabled, err := current.settings.DailyQuotesEnabled(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "widget daily quotes: %s\n", switchName(enabled))
			return nil
		},
	}

	cmd.AddCommand(widgetDaily)
	return cmd
}

func lookup(prefix string) (quotes.Quote, error) {
	q, ok := current.repo.FindByPrefix(strings.TrimPrefix(prefix, "#"))
	if !ok {
		return quotes.Quote{}, fmt.Errorf("no single quote matches %q", prefix)
	}
	return q, nil
}

func printList(cmd *cobra.Command, list []quotes.Quote) {
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No quotes.")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), quotes.RenderList(list))
}

func onlyFavorites(list []quotes.Quote) []quotes.Quote {
	var out []quotes.Quote
	for _, q := range list {
		if q.IsFavorite {
			out = append(out, q)
		}
	}
	return out
}

func hungerLine(state daily.HungerState) string {
	line := fmt.Sprintf("Memmi hunger %d/%d", state.Level, daily.MaxHunger)
	if state.Level <= daily.HungerDangerThreshold {
		line += " (hungry)"
	}
	return line
}

func snackLine(s snacks.Snack) string {
	return fmt.Sprintf("“%s” — %s, %s", s.Text, s.Author, s.Origin)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func switchName(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
