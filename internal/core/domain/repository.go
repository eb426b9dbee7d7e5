package domain

import (
	"context"
	"time"
)

// SeriesRepository is the read side of the external record store.
// Record writes belong to the store's owner; the only write here is the streak snapshot.
type SeriesRepository interface {
	// GetByID retrieves the metadata of a single series.
	GetByID(ctx context.Context, id string) (*Series, error)

	// ListByUserID retrieves every series of a user, active or not, in display order.
	ListByUserID(ctx context.Context, userID string) ([]*Series, error)

	// ListByIDs retrieves the requested series of a user in display order.
	// IDs that do not exist or belong to someone else are silently left out.
	ListByIDs(ctx context.Context, userID string, ids []string) ([]*Series, error)

	// ListActive retrieves active series of every user. Used by background refresh jobs.
	ListActive(ctx context.Context, kind SeriesKind) ([]*Series, error)

	// ListCompletionRecords returns records of a completion series dated within [from, to],
	// in insertion order. A zero 'from' means no lower bound.
	ListCompletionRecords(ctx context.Context, seriesID string, from, to time.Time) ([]CompletionRecord, error)

	// ListCountRecords is the count-series equivalent of ListCompletionRecords.
	ListCountRecords(ctx context.Context, seriesID string, from, to time.Time) ([]CountRecord, error)

	UpdateStreaks(ctx context.Context, id string, current, longest int) error
}
