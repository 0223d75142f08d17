package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/outreach-console/internal/domain/analytics"
	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

type analyticsOutput struct {
	Performance types.Performance `json:"performance"`
	Summary     analytics.Summary `json:"summary"`
}

func analyticsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Summarise message volume and niche distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				perf, err := a.api.Performance(ctx)
				if err != nil {
					return err
				}
				out := analyticsOutput{Performance: perf, Summary: analytics.Summarize(perf)}

				return a.output(cmd, out, func(w io.Writer) error {
					s := out.Summary
					fmt.Fprintf(w, "Messages over %d days: %d\n", s.Days, s.TotalMessages)
					fmt.Fprintf(w, "Per day: mean %.1f, median %.1f, stddev %.1f, trend %+.2f/day\n",
						s.MeanPerDay, s.MedianPerDay, s.StdDevPerDay, s.Trend)
					if s.Days > 0 {
						fmt.Fprintf(w, "Peak: %d on %s\n", s.Peak.Messages, s.Peak.Date)
					}
					fmt.Fprintln(w)

					t := newTable(w, "NICHE", "PROSPECTS", "SHARE")
					for _, n := range s.Niches {
						t.row(n.Niche, fmt.Sprint(n.Count), fmt.Sprintf("%.1f%%", n.Share*100))
					}
					if err := t.flush(); err != nil {
						return err
					}
					if top, ok := s.TopNiche(); ok {
						_, err := fmt.Fprintf(w, "\nTop niche: %s\n", top.Niche)
						return err
					}
					return nil
				})
			})
		},
	}
}

func statsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard overview counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthed(cmd, flags, func(ctx context.Context, a *app) error {
				stats, err := a.api.DashboardStats(ctx)
				if err != nil {
					return err
				}
				return a.output(cmd, stats, func(w io.Writer) error {
					t := newTable(w, "METRIC", "VALUE")
					t.row("Prospects", fmt.Sprint(stats.TotalProspects))
					t.row("Qualified", fmt.Sprint(stats.QualifiedProspects))
					t.row("Messages sent", fmt.Sprint(stats.MessagesSent))
					t.row("Messages today", fmt.Sprint(stats.MessagesToday))
					t.row("Responses", fmt.Sprint(stats.ResponsesReceived))
					t.row("Response rate", fmt.Sprintf("%.1f%%", stats.ResponseRate))
					t.row("New this week", fmt.Sprint(stats.RecentProspects))
					return t.flush()
				})
			})
		},
	}
}
