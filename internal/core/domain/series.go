package domain

import (
	"math"
	"strings"
	"time"
)

type SeriesKind string

const (
	// SeriesKindCompletion marks habits to build: each day is done or not done.
	SeriesKindCompletion SeriesKind = "completion"
	// SeriesKindCount marks habits to reduce: each day carries how many times it happened.
	SeriesKindCount SeriesKind = "count"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Series is the descriptive header shared by both record variants.
// Name, Color, Category and Frequency are passed through untouched.
type Series struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	Kind      SeriesKind `json:"kind" db:"kind"`
	Name      string     `json:"name" db:"name"`
	Color     string     `json:"color" db:"color"`
	Category  string     `json:"category" db:"category"`
	Frequency Frequency  `json:"frequency" db:"frequency"`
	IsActive  bool       `json:"is_active" db:"is_active"`

	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	LongestStreak int       `json:"longest_streak" db:"longest_streak"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func (s *Series) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return NewInvalidInput("series.id", "is required")
	}
	switch s.Kind {
	case "", SeriesKindCompletion, SeriesKindCount:
	default:
		return NewInvalidInput("series.kind", "must be completion or count")
	}
	switch s.Frequency {
	case "", FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return NewInvalidInput("series.frequency", "must be daily, weekly or monthly")
	}
	return nil
}

func (s *Series) UpdateStreak(current, longest int) {
	s.CurrentStreak = current
	s.LongestStreak = longest
	s.UpdatedAt = time.Now().UTC()
}

type CompletionRecord struct {
	Date        time.Time `json:"date" db:"record_date"`
	IsCompleted bool      `json:"is_completed" db:"is_completed"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
}

func (r CompletionRecord) Validate() error {
	if r.Date.IsZero() {
		return NewInvalidInput("record.date", "is missing or could not be parsed")
	}
	return nil
}

type CountRecord struct {
	Date  time.Time `json:"date" db:"record_date"`
	Value float64   `json:"value" db:"value"`
	Notes string    `json:"notes,omitempty" db:"notes"`
}

func (r CountRecord) Validate() error {
	if r.Date.IsZero() {
		return NewInvalidInput("record.date", "is missing or could not be parsed")
	}
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return NewInvalidInput("record.value", "must be a finite number")
	}
	if r.Value < 0 {
		return NewInvalidInput("record.value", "cannot be negative")
	}
	return nil
}

// CompletionSeries is a habit to build. Records are in insertion order;
// when two records share a day the first one wins.
type CompletionSeries struct {
	Series
	Records []CompletionRecord `json:"records"`
}

func (s CompletionSeries) Validate() error {
	if err := s.Series.Validate(); err != nil {
		return err
	}
	if s.Kind == SeriesKindCount {
		return NewInvalidInput("series.kind", "expected completion series "+s.ID)
	}
	for _, r := range s.Records {
		if err := r.Validate(); err != nil {
			return withSeries(err, s.ID)
		}
	}
	return nil
}

// CountSeries is a habit to reduce, tracked by how often it happened per day.
type CountSeries struct {
	Series
	Records []CountRecord `json:"records"`
}

func (s CountSeries) Validate() error {
	if err := s.Series.Validate(); err != nil {
		return err
	}
	if s.Kind == SeriesKindCompletion {
		return NewInvalidInput("series.kind", "expected count series "+s.ID)
	}
	for _, r := range s.Records {
		if err := r.Validate(); err != nil {
			return withSeries(err, s.ID)
		}
	}
	return nil
}
