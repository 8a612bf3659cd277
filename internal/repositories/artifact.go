package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
)

// ArtifactRepository records files written for stored results.
type ArtifactRepository struct {
	db *sql.DB
}

// NewArtifactRepository creates a new ArtifactRepository with the given database connection
func NewArtifactRepository(db *sql.DB) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

// Create inserts an artifact record with a generated ID
func (r *ArtifactRepository) Create(a *models.StoredArtifact) error {
	if a.ResultID == "" {
		return fmt.Errorf("%w: result_id is required", shared.ErrInvalidArgument)
	}
	if a.Path == "" {
		return fmt.Errorf("%w: path is required", shared.ErrInvalidArgument)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	id := shared.GenerateID()
	query := `INSERT INTO artifacts (id, result_id, kind, path, created_at) VALUES (?, ?, ?, ?, ?)`

	if _, err := r.db.Exec(query, id, a.ResultID, a.Kind, a.Path, a.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert artifact: %w", err)
	}

	a.ID = id
	return nil
}

// ListByResult returns the artifacts of a result, oldest first
func (r *ArtifactRepository) ListByResult(resultID string) ([]*models.StoredArtifact, error) {
	query := `
		SELECT id, result_id, kind, path, created_at
		FROM artifacts
		WHERE result_id = ?
		ORDER BY created_at ASC, path ASC
	`

	rows, err := r.db.Query(query, resultID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := []*models.StoredArtifact{}
	for rows.Next() {
		var a models.StoredArtifact
		if err := rows.Scan(&a.ID, &a.ResultID, &a.Kind, &a.Path, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artifacts, nil
}
