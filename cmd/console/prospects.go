package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

func prospectsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prospects",
		Short: "Browse and message prospects",
	}
	cmd.AddCommand(prospectsListCmd(flags), prospectsMessageCmd(flags))
	return cmd
}

type prospectsOutput struct {
	Prospects []types.Prospect `json:"prospects"`
	Page      int              `json:"page"`
	Pages     int              `json:"pages"`
	Total     int              `json:"total"`
}

func prospectsListCmd(flags *globalFlags) *cobra.Command {
	f := view.NewProspectFilter()
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of prospects",
		Long: `List prospects page by page.

--status, --niche and --page are applied by the backend; --search filters
the fetched page by username or full name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !types.ProspectStatus(status).Valid() {
				return fmt.Errorf("unknown status %q (want one of %v)", status, types.ProspectStatuses)
			}
			f.Status = types.ProspectStatus(status)

			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				q := f.Query()
				page, err := a.api.ListProspects(ctx, q)
				if err != nil {
					return err
				}
				prospects := f.Apply(a.sanitizer.Prospects(page.Prospects))

				out := prospectsOutput{Prospects: prospects, Page: q.Page, Pages: page.Pages, Total: page.Total}
				return a.output(cmd, out, func(w io.Writer) error {
					t := newTable(w, "ID", "USERNAME", "NAME", "NICHE", "STATUS", "FOLLOWERS", "SCORE")
					for _, p := range prospects {
						t.row(
							itoa(p.ID),
							"@"+p.Username,
							orDash(truncate(p.FullName, 28)),
							view.NicheBadge(p.Niche).Label,
							view.StatusBadge(p.Status).Label,
							strconv.Itoa(p.Followers),
							strconv.FormatFloat(p.CoachScore, 'f', 1, 64),
						)
					}
					if err := t.flush(); err != nil {
						return err
					}
					_, err := fmt.Fprintf(w, "\nPage %d of %d (%d prospects)\n", out.Page, max(out.Pages, 1), out.Total)
					return err
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&f.Niche, "niche", "", "Filter by niche")
	cmd.Flags().StringVar(&f.Search, "search", "", "Match username or full name on the fetched page")
	cmd.Flags().IntVar(&f.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.PerPage, "per-page", f.PerPage, "Prospects per page")

	return cmd
}

func prospectsMessageCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "message <id>",
		Short: "Send the outreach message to a prospect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				res, err := a.api.SendMessage(ctx, id)
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
