package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-insights/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schema string

var _ domain.SeriesRepository = (*PostgresSeriesRepository)(nil)

const seriesColumns = `id, user_id, kind, name, color, category, frequency, is_active,
	current_streak, longest_streak, created_at, updated_at`

type PostgresSeriesRepository struct {
	db *sqlx.DB
}

func NewPostgresSeriesRepository(db *sqlx.DB) *PostgresSeriesRepository {
	return &PostgresSeriesRepository{db: db}
}

// EnsureSchema creates the series tables when they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (r *PostgresSeriesRepository) GetByID(ctx context.Context, id string) (*domain.Series, error) {
	var s domain.Series
	query := `SELECT ` + seriesColumns + ` FROM series WHERE id = $1`

	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSeriesNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &s, nil
}

func (r *PostgresSeriesRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Series, error) {
	series := []*domain.Series{}
	query := `
		SELECT ` + seriesColumns + ` FROM series
		WHERE user_id = $1
		ORDER BY sort_order ASC, created_at ASC`

	if err := r.db.SelectContext(ctx, &series, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return series, nil
}

func (r *PostgresSeriesRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Series, error) {
	series := []*domain.Series{}
	if len(ids) == 0 {
		return series, nil
	}

	query := `
		SELECT ` + seriesColumns + ` FROM series
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY sort_order ASC, created_at ASC`

	if err := r.db.SelectContext(ctx, &series, query, userID, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return series, nil
}

func (r *PostgresSeriesRepository) ListActive(ctx context.Context, kind domain.SeriesKind) ([]*domain.Series, error) {
	series := []*domain.Series{}
	query := `
		SELECT ` + seriesColumns + ` FROM series
		WHERE is_active AND kind = $1
		ORDER BY user_id, sort_order ASC`

	if err := r.db.SelectContext(ctx, &series, query, kind); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return series, nil
}

func (r *PostgresSeriesRepository) ListCompletionRecords(ctx context.Context, seriesID string, from, to time.Time) ([]domain.CompletionRecord, error) {
	records := []domain.CompletionRecord{}
	query := `
		SELECT record_date, is_completed, notes FROM series_records
		WHERE series_id = $1
		  AND ($2::date IS NULL OR record_date >= $2::date)
		  AND record_date <= $3::date
		ORDER BY id ASC`

	if err := r.db.SelectContext(ctx, &records, query, seriesID, lowerBound(from), to); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return records, nil
}

func (r *PostgresSeriesRepository) ListCountRecords(ctx context.Context, seriesID string, from, to time.Time) ([]domain.CountRecord, error) {
	records := []domain.CountRecord{}
	query := `
		SELECT record_date, value, notes FROM series_records
		WHERE series_id = $1
		  AND ($2::date IS NULL OR record_date >= $2::date)
		  AND record_date <= $3::date
		ORDER BY id ASC`

	if err := r.db.SelectContext(ctx, &records, query, seriesID, lowerBound(from), to); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return records, nil
}

func (r *PostgresSeriesRepository) UpdateStreaks(ctx context.Context, id string, current, longest int) error {
	query := `
		UPDATE series
		SET current_streak = $1, longest_streak = $2, updated_at = NOW()
		WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, current, longest, id)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSeriesNotFound
	}

	return nil
}

func lowerBound(from time.Time) any {
	if from.IsZero() {
		return nil
	}
	return from
}
