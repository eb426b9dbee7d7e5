package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

const moneyFormat = "#,###.##"

func newTable(w io.Writer, title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	style.Title.Format = text.FormatDefault
	tbl.SetStyle(style)
	tbl.SetTitle(title)
	return tbl
}

func renderGrid(w io.Writer, grid domain.YearGrid) {
	tbl := newTable(w, fmt.Sprintf("%d - %d weeks", grid.Year, len(grid.Weeks)))
	tbl.AppendHeader(table.Row{"Month", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"})

	for _, week := range grid.Weeks {
		row := table.Row{""}
		if week.HasMonthLabel() {
			row[0] = week.MonthLabel.String()[:3]
		}
		for _, slot := range week.Days {
			if slot.OutOfYear {
				row = append(row, "·")
				continue
			}
			row = append(row, slot.Date.Day())
		}
		tbl.AppendRow(row)
	}

	tbl.AppendFooter(table.Row{"", "", "", "", "", "", "", fmt.Sprintf("%d days", grid.InYearCount())})
	tbl.Render()
}

func renderHeatmap(w io.Writer, heatmap domain.Heatmap, showAll bool) {
	tbl := newTable(w, fmt.Sprintf("Heatmap %d", heatmap.Year))
	tbl.AppendHeader(table.Row{"Date", "Done", "Rate", "Intensity", "Notes"})

	active := 0
	for _, day := range heatmap.Days {
		if day.CompletedCount > 0 || len(day.Notes) > 0 {
			active++
		} else if !showAll {
			continue
		}
		tbl.AppendRow(table.Row{
			day.Date.Format(domain.DateLayout),
			fmt.Sprintf("%d/%d", day.CompletedCount, day.TotalCount),
			fmt.Sprintf("%.0f%%", day.CompletionRate),
			day.Intensity,
			strings.ReplaceAll(day.JoinedNotes(), "\n", "; "),
		})
	}

	footer := fmt.Sprintf("%d active days", active)
	if heatmap.Empty {
		footer = "no series selected"
	}
	tbl.AppendFooter(table.Row{"", "", "", "", footer})
	tbl.Render()
}

func renderStreaks(w io.Writer, ds *dataset, asOf time.Time, results []domain.StreakResult) {
	tbl := newTable(w, "Streaks as of "+asOf.Format(domain.DateLayout))
	tbl.AppendHeader(table.Row{"Series", "Current", "Longest"})

	for _, r := range results {
		tbl.AppendRow(table.Row{ds.name(r.SeriesID), days(r.Length), days(r.Longest)})
	}

	tbl.Render()
}

func renderTrends(w io.Writer, ds *dataset, asOf time.Time, results []domain.TrendResult) {
	tbl := newTable(w, "Trends as of "+asOf.Format(domain.DateLayout))
	tbl.AppendHeader(table.Row{"Series", "Recent avg", "Prior avg", "Reduction", "Status"})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			ds.name(r.SeriesID),
			humanize.FormatFloat(moneyFormat, r.RecentWindowAverage),
			humanize.FormatFloat(moneyFormat, r.PriorWindowAverage),
			fmt.Sprintf("%.1f%%", r.PercentChange),
			r.Status,
		})
	}

	tbl.Render()
}

func renderImpact(w io.Writer, ds *dataset, asOf time.Time, p domain.ImpactProjection) {
	tbl := newTable(w, fmt.Sprintf("%s - last %d days to %s", ds.name(p.SeriesID), p.WindowDays, asOf.Format(domain.DateLayout)))
	tbl.AppendHeader(table.Row{"", "Value"})
	tbl.AppendRows([]table.Row{
		{"Units in window", humanize.FormatFloat(moneyFormat, p.WindowTotal)},
		{"Monthly cost", humanize.FormatFloat(moneyFormat, p.MonthlyProjection)},
		{"Yearly cost", humanize.FormatFloat(moneyFormat, p.YearlyProjection)},
	})
	tbl.AppendFooter(table.Row{"Per unit", strconv.FormatFloat(p.PerUnitCost, 'f', -1, 64)})
	tbl.Render()
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}
