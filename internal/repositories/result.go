package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
)

const resultColumns = `id, sequence, topic, target_audience, duration_minutes, payload, created_at, deleted_at`

// ResultRepository stores generation results so later commands can pick up the current course.
//
// Handles result CRUD operations with soft delete support.
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new ResultRepository with the given database connection
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Create inserts a result with a generated ID and sequence. CreatedAt defaults to now.
func (r *ResultRepository) Create(stored *models.StoredResult) error {
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	if err := stored.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	payload, err := stored.Result.Payload()
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	sequence, err := NextSequence(r.db, "results")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO results (id, sequence, topic, target_audience, duration_minutes, course_title, slide_count, elapsed_time, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		stored.Request.Topic,
		stored.Request.TargetAudience,
		stored.Request.DurationMinutes,
		stored.Result.Results.Curriculum.CourseTitle,
		len(stored.Result.Slides()),
		stored.Result.ElapsedTime,
		string(payload),
		stored.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	stored.ID = id
	stored.Sequence = sequence
	return nil
}

// Get retrieves a result by ID, excluding soft-deleted results
func (r *ResultRepository) Get(id string) (*models.StoredResult, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetBySequence retrieves a result by its sequence number
func (r *ResultRepository) GetBySequence(sequence int) (*models.StoredResult, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE sequence = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, sequence))
}

// Latest returns the most recently stored result.
func (r *ResultRepository) Latest() (*models.StoredResult, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE deleted_at IS NULL ORDER BY sequence DESC LIMIT 1`
	return r.scan(r.db.QueryRow(query))
}

// List returns up to limit results, newest first. limit <= 0 returns all of them.
func (r *ResultRepository) List(limit int) ([]*models.StoredResult, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE deleted_at IS NULL ORDER BY sequence DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := []*models.StoredResult{}
	for rows.Next() {
		stored, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, stored)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return results, nil
}

// Delete soft-deletes a result by ID
func (r *ResultRepository) Delete(id string) error {
	query := `UPDATE results SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrResultMissing, id)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row selected with [resultColumns]
func (r *ResultRepository) scan(row scanner) (*models.StoredResult, error) {
	var (
		stored    models.StoredResult
		payload   string
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&stored.ID,
		&stored.Sequence,
		&stored.Request.Topic,
		&stored.Request.TargetAudience,
		&stored.Request.DurationMinutes,
		&payload,
		&stored.CreatedAt,
		&deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrResultMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan result: %w", err)
	}

	stored.Result, err = models.DecodeResult([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored payload %s: %w", stored.ID, err)
	}
	if deletedAt.Valid {
		stored.DeletedAt = &deletedAt.Time
	}

	return &stored, nil
}
