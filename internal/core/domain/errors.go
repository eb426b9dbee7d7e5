package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSeriesNotFound = errors.New("series not found")
	ErrUnauthorized   = errors.New("unauthorized access to series")
	ErrInvalidInput   = errors.New("invalid input")
)

// InvalidInputError describes which caller-controlled value broke a data-model rule.
// It matches ErrInvalidInput with errors.Is.
type InvalidInputError struct {
	SeriesID string
	Field    string
	Reason   string
}

func NewInvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	if e.SeriesID != "" {
		return fmt.Sprintf("invalid input: series %s: %s %s", e.SeriesID, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func withSeries(err error, seriesID string) error {
	var inv *InvalidInputError
	if errors.As(err, &inv) && inv.SeriesID == "" {
		copied := *inv
		copied.SeriesID = seriesID
		return &copied
	}
	return err
}
