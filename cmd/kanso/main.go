// Command kanso runs the insights engine over a YAML file of habit series,
// without a database.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

type rootOptions struct {
	file    string
	asOf    string
	workers int
	now     func() time.Time
}

// resolveAsOf returns the --as-of day, or today when the flag is empty.
func (o *rootOptions) resolveAsOf() (time.Time, error) {
	if o.asOf == "" {
		return domain.DayOf(o.now()), nil
	}
	return domain.ParseDate(o.asOf)
}

func main() {
	if err := newRootCmd(time.Now).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(now func() time.Time) *cobra.Command {
	opts := &rootOptions{now: now}

	rootCmd := &cobra.Command{
		Use:   "kanso",
		Short: "Kanso Insights - habit heatmaps, streaks and trends",
		Long: `Kanso Insights computes calendar heatmaps, streaks, trends and cost
projections from a YAML file of habit series.

Commands:
  grid      Yearly week grid layout
  heatmap   Per-day completion heatmap for a year
  streak    Current and longest streaks
  trend     Recent vs prior window trends for count series
  impact    Monthly and yearly cost projection for a count series`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "series.yaml", "YAML file with the series to analyse")
	rootCmd.PersistentFlags().StringVar(&opts.asOf, "as-of", "", "reference day as YYYY-MM-DD (default today)")
	rootCmd.PersistentFlags().IntVar(&opts.workers, "workers", 0, "parallel workers for batch computations (0 = number of CPUs)")

	rootCmd.AddCommand(newGridCmd())
	rootCmd.AddCommand(newHeatmapCmd(opts))
	rootCmd.AddCommand(newStreakCmd(opts))
	rootCmd.AddCommand(newTrendCmd(opts))
	rootCmd.AddCommand(newImpactCmd(opts))

	return rootCmd
}
