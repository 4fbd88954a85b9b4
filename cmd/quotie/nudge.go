package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newNudgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nudge",
		Short: "Inspect and test Memmi's evening nudge",
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show authorization and pending notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			auth, err := current.center.AuthorizationStatus(ctx)
			if err != nil {
				return err
			}
			pending, err := current.center.Pending(ctx)
			if err != nil {
				return err
			}
			reloadedAt, reloaded, err := current.reloader.LastReload()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "authorization: %s\n", auth)
			if len(pending) == 0 {
				fmt.Fprintln(out, "no pending notifications")
			}
			for _, n := range pending {
				fmt.Fprintf(out, "%s at %s: %s\n", n.ID, n.FireAt.Local().Format(time.DateTime), n.Body)
			}
			if reloaded {
				fmt.Fprintf(out, "widget last reloaded at %s\n", reloadedAt.Local().Format(time.DateTime))
			} else {
				fmt.Fprintln(out, "widget never reloaded")
			}
			return nil
		},
	}

	authorize := &cobra.Command{
		Use:   "authorize",
		Short: "Ask again for permission to send nudges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			granted, err := current.center.RequestAuthorization(cmd.Context())
			if err != nil {
				return err
			}
			if !granted {
				fmt.Fprintln(cmd.OutOrStdout(), "denied: configure telegram.owner_chat_id to receive nudges")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "authorized")
			return current.service.OnLaunch(cmd.Context())
		},
	}

	var testDelay time.Duration
	test := &cobra.Command{
		Use:   "test",
		Short: "Schedule the next nudge message shortly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := current.scheduler.ScheduleTest(cmd.Context(), testDelay)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scheduled %q for %s\n", req.Body, req.FireAt.Local().Format(time.DateTime))
			return nil
		},
	}
	test.Flags().DurationVar(&testDelay, "delay", 5*time.Second, "How long from now")

	var debugDelay time.Duration
	debug := &cobra.Command{
		Use:   "debug",
		Short: "Schedule a one-off debug notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := current.scheduler.Debug(cmd.Context(), debugDelay)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scheduled %s for %s\n", req.ID, req.FireAt.Local().Format(time.DateTime))
			return nil
		},
	}
	debug.Flags().DurationVar(&debugDelay, "delay", 5*time.Second, "How long from now (at least 1s)")

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel tonight's nudge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return current.scheduler.CancelNudge(cmd.Context())
		},
	}

	cmd.AddCommand(status, authorize, test, debug, cancel)
	return cmd
}
