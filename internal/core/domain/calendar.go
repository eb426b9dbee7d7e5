package domain

import (
	"strings"
	"time"
)

type GridSlot struct {
	Date      time.Time `json:"date"`
	OutOfYear bool      `json:"out_of_year"`
}

// WeekRow is one Sunday-to-Saturday column of the yearly grid.
// MonthLabel is zero unless this row opens a month.
type WeekRow struct {
	Start      time.Time   `json:"start"`
	Days       [7]GridSlot `json:"days"`
	MonthLabel time.Month  `json:"month_label,omitempty"`
}

func (w WeekRow) HasMonthLabel() bool {
	return w.MonthLabel != 0
}

type YearGrid struct {
	Year  int       `json:"year"`
	Weeks []WeekRow `json:"weeks"`
}

func (g YearGrid) SlotCount() int {
	return len(g.Weeks) * 7
}

func (g YearGrid) InYearCount() int {
	n := 0
	for _, w := range g.Weeks {
		for _, d := range w.Days {
			if !d.OutOfYear {
				n++
			}
		}
	}
	return n
}

type EntityDetail struct {
	SeriesID  string `json:"series_id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Color     string `json:"color"`
}

type DayNote struct {
	SeriesID   string `json:"series_id"`
	SeriesName string `json:"series_name"`
	Text       string `json:"text"`
}

type CalendarDay struct {
	Date           time.Time      `json:"date"`
	CompletedCount int            `json:"completed_count"`
	TotalCount     int            `json:"total_count"`
	CompletionRate float64        `json:"completion_rate"`
	Intensity      Intensity      `json:"intensity"`
	Entities       []EntityDetail `json:"entities"`
	Notes          []DayNote      `json:"notes,omitempty"`
}

// EmptySelection reports that no series were selected, so the rate carries no information.
func (d CalendarDay) EmptySelection() bool {
	return d.TotalCount == 0
}

// JoinedNotes returns every note of the day as "<series name>: <text>", one per line.
func (d CalendarDay) JoinedNotes() string {
	if len(d.Notes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.Notes))
	for _, n := range d.Notes {
		parts = append(parts, n.SeriesName+": "+n.Text)
	}
	return strings.Join(parts, "\n")
}

type Heatmap struct {
	Year  int           `json:"year"`
	Empty bool          `json:"empty"`
	Grid  YearGrid      `json:"grid"`
	Days  []CalendarDay `json:"days"`
}
