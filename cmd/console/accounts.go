package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

func accountsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage Instagram sender accounts",
	}
	cmd.AddCommand(
		accountsListCmd(flags),
		accountsAddCmd(flags),
		accountsToggleCmd(flags),
		accountsDeleteCmd(flags),
		accountsTestCmd(flags),
	)
	return cmd
}

func accountsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sender accounts with today's usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				accounts, err := a.api.ListAccounts(ctx)
				if err != nil {
					return err
				}
				accounts = a.sanitizer.Accounts(accounts)

				return a.output(cmd, accounts, func(w io.Writer) error {
					t := newTable(w, "ID", "USERNAME", "STATUS", "SENT", "USAGE", "REMAINING", "LAST ACTIVITY")
					for _, acc := range accounts {
						last := "-"
						if acc.LastActivity != nil {
							last = *acc.LastActivity
						}
						t.row(
							itoa(acc.ID),
							"@"+acc.Username,
							view.AccountBadge(acc).Label,
							fmt.Sprintf("%d/%d", acc.DailyMessagesSent, acc.DailyLimit),
							view.UsageBadge(acc.DailyMessagesSent, acc.DailyLimit).Label,
							strconv.Itoa(acc.RemainingToday),
							last,
						)
					}
					return t.flush()
				})
			})
		},
	}
}

func accountsAddCmd(flags *globalFlags) *cobra.Command {
	var in types.InstagramAccountCreate

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a sender account",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Username = strings.TrimPrefix(strings.TrimSpace(in.Username), "@")
			if in.Username == "" || strings.TrimSpace(in.SessionID) == "" {
				return fmt.Errorf("--username and --session-id are required")
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				created, err := a.api.CreateAccount(ctx, in)
				if err != nil {
					return err
				}
				return a.output(cmd, created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Added @%s (id %d, %d/day)\n", created.Username, created.ID, created.DailyLimit)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "Instagram username")
	cmd.Flags().StringVar(&in.SessionID, "session-id", "", "Instagram session ID")
	cmd.Flags().IntVar(&in.DailyLimit, "daily-limit", types.DefaultDailyLimit, "Messages per day")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Notes")

	return cmd
}

func accountsToggleCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Activate or deactivate a sender account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				accounts, err := a.api.ListAccounts(ctx)
				if err != nil {
					return err
				}
				for _, acc := range accounts {
					if acc.ID != id {
						continue
					}
					if err := a.api.SetAccountActive(ctx, id, !acc.IsActive); err != nil {
						return err
					}
					state := "activated"
					if acc.IsActive {
						state = "deactivated"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "@%s %s\n", acc.Username, state)
					return nil
				}
				return fmt.Errorf("account %d not found", id)
			})
		},
	}
}

func accountsDeleteCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sender account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				if err := a.api.DeleteAccount(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %d\n", id)
				return nil
			})
		},
	}
}

func accountsTestCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "test <id>",
		Short: "Test a sender account's connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				res, err := a.api.TestAccount(ctx, id)
				if err != nil {
					return err
				}
				return a.output(cmd, res, func(w io.Writer) error {
					_, err := fmt.Fprintln(w, orDash(res.Message))
					return err
				})
			})
		},
	}
}
