package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnpath/backend/internal/models"
)

type sweepRepository struct {
	db *sql.DB
}

// NewSweepRepository creates a repository reading progress across all learners
func NewSweepRepository(db *sql.DB) *sweepRepository {
	return &sweepRepository{
		db: db,
	}
}

// ListInProgressModules retrieves up to "limit" module progress rows that are still IN_PROGRESS,
// least recently updated first. With "after" set, only rows past that position are returned.
func (r *sweepRepository) ListInProgressModules(ctx context.Context, after *models.SweepCursor, limit int) ([]models.ModuleProgressRef, error) {
	query := `
		SELECT id, user_id, module_id, updated_at
		FROM module_progress
		WHERE status = ?
	`
	args := []any{models.ProgressStatusInProgress}
	if after != nil {
		query += ` AND (updated_at > ? OR (updated_at = ? AND id > ?))`
		args = append(args, after.UpdatedAt, after.UpdatedAt, after.ID)
	}
	query += `
		ORDER BY updated_at ASC, id ASC
		LIMIT ?
	`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query in progress modules: %w", err)
	}
	defer rows.Close()

	var refs []models.ModuleProgressRef
	for rows.Next() {
		var ref models.ModuleProgressRef
		if err := rows.Scan(&ref.ID, &ref.UserID, &ref.ModuleID, &ref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan module progress: %w", err)
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module progress: %w", err)
	}

	return refs, nil
}
