package domain

import (
	"context"
	"time"
)

// ObservationRepository defines operations for storing/retrieving observations
// This is a PORT - adapters (SQLite, Memory) will implement it
type ObservationRepository interface {
	// SaveObservation persists an observation and assigns its ID
	SaveObservation(ctx context.Context, obs *Observation) error

	// GetObservation retrieves a specific observation by ID
	GetObservation(ctx context.Context, id int64) (*Observation, error)

	// GetObservationsInRange retrieves all observations within time range.
	// Uses a half-open interval: inclusive start, exclusive end [start, end).
	GetObservationsInRange(ctx context.Context, start, end time.Time) ([]*Observation, error)

	// GetLatestObservation retrieves the most recent observation
	GetLatestObservation(ctx context.Context) (*Observation, error)

	// CountSessionObservations returns how many stored observations belong to session
	CountSessionObservations(ctx context.Context, session string) (int, error)

	// DeleteOldObservations removes observations older than specified duration
	DeleteOldObservations(ctx context.Context, olderThan time.Duration) error
}
