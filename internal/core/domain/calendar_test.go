package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendarDay_Helpers(t *testing.T) {
	t.Run("Empty selection", func(t *testing.T) {
		assert.True(t, CalendarDay{}.EmptySelection())
		assert.False(t, CalendarDay{TotalCount: 2}.EmptySelection())
	})

	t.Run("Notes are tagged with series name", func(t *testing.T) {
		d := CalendarDay{Notes: []DayNote{
			{SeriesID: "h1", SeriesName: "Run", Text: "5k"},
			{SeriesID: "h2", SeriesName: "Read", Text: "chapter 3"},
		}}
		assert.Equal(t, "Run: 5k\nRead: chapter 3", d.JoinedNotes())
		assert.Equal(t, "", CalendarDay{}.JoinedNotes())
	})
}

func TestYearGrid_Counts(t *testing.T) {
	g := YearGrid{Year: 2025, Weeks: make([]WeekRow, 2)}
	g.Weeks[0].Days[0] = GridSlot{Date: time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC), OutOfYear: true}

	assert.Equal(t, 14, g.SlotCount())
	assert.Equal(t, 13, g.InYearCount())
	assert.False(t, g.Weeks[0].HasMonthLabel())
}
