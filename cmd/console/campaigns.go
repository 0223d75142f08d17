package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
)

func campaignsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "Manage outreach campaigns",
	}
	cmd.AddCommand(
		campaignsListCmd(flags),
		campaignsCreateCmd(flags),
		campaignActionCmd(flags, "start", "Start a campaign"),
		campaignActionCmd(flags, "pause", "Pause a campaign"),
	)
	return cmd
}

func campaignsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				campaigns, err := a.api.ListCampaigns(ctx)
				if err != nil {
					return err
				}
				campaigns = a.sanitizer.Campaigns(campaigns)

				return a.output(cmd, campaigns, func(w io.Writer) error {
					t := newTable(w, "ID", "NAME", "STATUS", "SENT", "RESPONSES", "LIMIT", "ACCOUNT", "HASHTAGS")
					for _, c := range campaigns {
						account := "-"
						if c.InstagramAccount != nil {
							account = "@" + c.InstagramAccount.Username
						}
						t.row(
							itoa(c.ID),
							truncate(c.Name, 32),
							view.CampaignBadge(c.Status).Label,
							strconv.Itoa(c.MessagesSent),
							strconv.Itoa(c.ResponsesReceived),
							strconv.Itoa(c.DailyLimit),
							account,
							orDash(strings.Join(c.Hashtags, ",")),
						)
					}
					return t.flush()
				})
			})
		},
	}
}

func campaignsCreateCmd(flags *globalFlags) *cobra.Command {
	var form view.CampaignForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a campaign",
		Long: `Create a campaign. Hashtags and target accounts are comma-separated;
blank entries are dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := view.ParseCampaignForm(form)
			if err != nil {
				return err
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				created, err := a.api.CreateCampaign(ctx, in)
				if err != nil {
					return err
				}
				return a.output(cmd, created, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Created campaign %d (%s)\n", created.ID, created.Name)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Campaign name")
	cmd.Flags().StringVar(&form.Description, "description", "", "Description")
	cmd.Flags().StringVar(&form.Hashtags, "hashtags", "", "Comma-separated hashtags")
	cmd.Flags().StringVar(&form.TargetAccounts, "targets", "", "Comma-separated target accounts")
	cmd.Flags().StringVar(&form.InstagramAccountID, "account", "", "Sender account ID")
	cmd.Flags().IntVar(&form.DailyLimit, "daily-limit", 0, "Messages per day (default 50)")

	return cmd
}

func campaignActionCmd(flags *globalFlags, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				do := a.api.StartCampaign
				if action == "pause" {
					do = a.api.PauseCampaign
				}
				if err := do(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Campaign %d: %s ok\n", id, action)
				return nil
			})
		},
	}
}
