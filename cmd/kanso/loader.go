package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-insights/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"
)

// localUser owns every series read from a file.
const localUser = "local"

type seriesFile struct {
	Series []seriesEntry `yaml:"series"`
}

type seriesEntry struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	Color     string        `yaml:"color"`
	Category  string        `yaml:"category"`
	Frequency string        `yaml:"frequency"`
	Active    *bool         `yaml:"active"`
	Records   []recordEntry `yaml:"records"`
}

type recordEntry struct {
	Date      string  `yaml:"date"`
	Completed bool    `yaml:"completed"`
	Value     float64 `yaml:"value"`
	Notes     string  `yaml:"notes"`
}

type dataset struct {
	repo  *repository.InMemorySeriesRepository
	names map[string]string
}

func (d *dataset) name(id string) string {
	if n, ok := d.names[id]; ok && n != "" {
		return n
	}
	return id
}

func loadDataset(path string) (*dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series file: %w", err)
	}

	var file seriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse series file %s: %w", path, err)
	}

	ds := &dataset{
		repo:  repository.NewInMemorySeriesRepository(),
		names: make(map[string]string, len(file.Series)),
	}

	for i, entry := range file.Series {
		if entry.ID == "" {
			return nil, fmt.Errorf("series #%d: id is required", i+1)
		}
		if err := ds.add(entry); err != nil {
			return nil, fmt.Errorf("series %s: %w", entry.ID, err)
		}
	}

	return ds, nil
}

func (d *dataset) add(entry seriesEntry) error {
	active := true
	if entry.Active != nil {
		active = *entry.Active
	}

	id, err := d.repo.AddSeries(domain.Series{
		ID:        entry.ID,
		UserID:    localUser,
		Kind:      domain.SeriesKind(entry.Kind),
		Name:      entry.Name,
		Color:     entry.Color,
		Category:  entry.Category,
		Frequency: domain.Frequency(entry.Frequency),
		IsActive:  active,
	})
	if err != nil {
		return err
	}
	d.names[id] = entry.Name

	switch domain.SeriesKind(entry.Kind) {
	case domain.SeriesKindCount:
		records := make([]domain.CountRecord, 0, len(entry.Records))
		for _, r := range entry.Records {
			date, err := domain.ParseDate(r.Date)
			if err != nil {
				return err
			}
			rec := domain.CountRecord{Date: date, Value: r.Value, Notes: r.Notes}
			if err := rec.Validate(); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return d.repo.AddCountRecords(id, records...)
	default:
		records := make([]domain.CompletionRecord, 0, len(entry.Records))
		for _, r := range entry.Records {
			date, err := domain.ParseDate(r.Date)
			if err != nil {
				return err
			}
			records = append(records, domain.CompletionRecord{Date: date, IsCompleted: r.Completed, Notes: r.Notes})
		}
		return d.repo.AddCompletionRecords(id, records...)
	}
}
