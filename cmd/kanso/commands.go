package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-insights/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-insights/internal/core/services"
)

func newGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid <year>",
		Short: "Print the week grid of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q: %w", args[0], err)
			}

			grid, err := analytics.BuildYearGrid(year)
			if err != nil {
				return err
			}

			renderGrid(cmd.OutOrStdout(), grid)
			return nil
		},
	}
}

func newHeatmapCmd(opts *rootOptions) *cobra.Command {
	var (
		years           []int
		seriesIDs       []string
		includeInactive bool
		showAll         bool
	)

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Per-day completion heatmap for one or more years",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(years) == 0 {
				asOf, err := opts.resolveAsOf()
				if err != nil {
					return err
				}
				years = []int{asOf.Year()}
			}

			ds, err := loadDataset(opts.file)
			if err != nil {
				return err
			}

			svc := services.NewAnalyticsService(ds.repo, opts.workers)
			heatmaps, err := svc.GetHeatmaps(context.Background(), services.HeatmapsInput{
				UserID:          localUser,
				Years:           years,
				SeriesIDs:       seriesIDs,
				IncludeInactive: includeInactive,
			})
			if err != nil {
				return err
			}

			for _, h := range heatmaps {
				renderHeatmap(cmd.OutOrStdout(), h, showAll)
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&years, "year", nil, "year to aggregate, repeatable (default the --as-of year)")
	cmd.Flags().StringSliceVar(&seriesIDs, "series", nil, "restrict to these series ids")
	cmd.Flags().BoolVar(&includeInactive, "include-inactive", false, "include inactive series")
	cmd.Flags().BoolVar(&showAll, "all", false, "list every day, not only days with activity")

	return cmd
}

func newStreakCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Current and longest streak of every active completion series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asOf, err := opts.resolveAsOf()
			if err != nil {
				return err
			}

			ds, err := loadDataset(opts.file)
			if err != nil {
				return err
			}

			svc := services.NewAnalyticsService(ds.repo, opts.workers)
			results, err := svc.GetStreaks(context.Background(), services.StreaksInput{UserID: localUser, AsOf: asOf})
			if err != nil {
				return err
			}

			renderStreaks(cmd.OutOrStdout(), ds, asOf, results)
			return nil
		},
	}
}

func newTrendCmd(opts *rootOptions) *cobra.Command {
	var recentDays, priorDays int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Compare the recent window with the one before it for every active count series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			asOf, err := opts.resolveAsOf()
			if err != nil {
				return err
			}

			ds, err := loadDataset(opts.file)
			if err != nil {
				return err
			}

			svc := services.NewAnalyticsService(ds.repo, opts.workers)
			results, err := svc.GetTrends(context.Background(), services.TrendsInput{
				UserID:           localUser,
				AsOf:             asOf,
				RecentWindowDays: recentDays,
				PriorWindowDays:  priorDays,
			})
			if err != nil {
				return err
			}

			renderTrends(cmd.OutOrStdout(), ds, asOf, results)
			return nil
		},
	}

	cmd.Flags().IntVar(&recentDays, "recent-days", analytics.DefaultWindowDays, "length of the recent window in days")
	cmd.Flags().IntVar(&priorDays, "prior-days", analytics.DefaultWindowDays, "length of the prior window in days")

	return cmd
}

func newImpactCmd(opts *rootOptions) *cobra.Command {
	var (
		windowDays  int
		perUnitCost float64
	)

	cmd := &cobra.Command{
		Use:   "impact <series-id>",
		Short: "Project the monthly and yearly cost of a count series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf, err := opts.resolveAsOf()
			if err != nil {
				return err
			}

			ds, err := loadDataset(opts.file)
			if err != nil {
				return err
			}

			svc := services.NewAnalyticsService(ds.repo, opts.workers)
			projection, err := svc.GetImpact(context.Background(), services.ImpactInput{
				UserID:      localUser,
				SeriesID:    args[0],
				AsOf:        asOf,
				WindowDays:  windowDays,
				PerUnitCost: perUnitCost,
			})
			if err != nil {
				return err
			}

			renderImpact(cmd.OutOrStdout(), ds, asOf, *projection)
			return nil
		},
	}

	cmd.Flags().IntVar(&windowDays, "window", analytics.DefaultWindowDays, "window length in days")
	cmd.Flags().Float64Var(&perUnitCost, "cost", 0, "cost of a single unit")

	return cmd
}
