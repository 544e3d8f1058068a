package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jhogsett/LightBench/internal/domain"
)

// Timestamps are stored as Unix nanoseconds so range queries compare integers
const schema = `
CREATE TABLE IF NOT EXISTS observations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT NOT NULL,
	mode INTEGER NOT NULL,
	value REAL NOT NULL,
	color INTEGER NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_observations_timestamp ON observations(timestamp);
CREATE INDEX IF NOT EXISTS idx_observations_session ON observations(session);
`

const selectColumns = `SELECT id, session, mode, value, color, timestamp FROM observations`

// ObservationRepository implements domain.ObservationRepository with SQLite
type ObservationRepository struct {
	db *sql.DB
}

// NewObservationRepository creates a SQLite-backed repository
func NewObservationRepository(dbPath string) (*ObservationRepository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &ObservationRepository{db: db}, nil
}

// SaveObservation stores an observation in SQLite
func (r *ObservationRepository) SaveObservation(ctx context.Context, obs *domain.Observation) error {
	query := `INSERT INTO observations (session, mode, value, color, timestamp) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		obs.Session, int(obs.Mode), obs.Value, int64(obs.Color.Packed()), obs.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}

	obs.ID = id
	return nil
}

// GetObservation retrieves an observation by ID
func (r *ObservationRepository) GetObservation(ctx context.Context, id int64) (*domain.Observation, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	obs, err := scanObservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrObservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query observation: %w", err)
	}
	return obs, nil
}

// GetObservationsInRange returns observations in [start, end), oldest first
func (r *ObservationRepository) GetObservationsInRange(ctx context.Context, start, end time.Time) ([]*domain.Observation, error) {
	query := selectColumns + `
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []*domain.Observation
	for rows.Next() {
		obs, err := scanObservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return observations, nil
}

// GetLatestObservation returns the most recent observation
func (r *ObservationRepository) GetLatestObservation(ctx context.Context) (*domain.Observation, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT 1`)

	obs, err := scanObservation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrObservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest observation: %w", err)
	}
	return obs, nil
}

// CountSessionObservations returns how many stored observations belong to session
func (r *ObservationRepository) CountSessionObservations(ctx context.Context, session string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM observations WHERE session = ?`, session).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count session observations: %w", err)
	}
	return n, nil
}

// DeleteOldObservations removes observations older than specified duration
func (r *ObservationRepository) DeleteOldObservations(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)

	_, err := r.db.ExecContext(ctx, `DELETE FROM observations WHERE timestamp < ?`, cutoff.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to delete old observations: %w", err)
	}

	return nil
}

// Close closes the database connection
func (r *ObservationRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanObservation(s scanner) (*domain.Observation, error) {
	var (
		obs   domain.Observation
		mode  int
		color int64
		nanos int64
	)

	if err := s.Scan(&obs.ID, &obs.Session, &mode, &obs.Value, &color, &nanos); err != nil {
		return nil, err
	}

	obs.Mode = domain.Mode(mode)
	obs.Color = domain.Unpack(uint32(color))
	obs.Timestamp = time.Unix(0, nanos)
	return &obs, nil
}
