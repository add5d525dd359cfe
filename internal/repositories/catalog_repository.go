package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/learnpath/backend/internal/models"
)

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *sql.DB) *catalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// ListUnits retrieves the units of a module ordered by sort order
func (r *catalogRepository) ListUnits(ctx context.Context, moduleID string) ([]models.Unit, error) {
	query := `
		SELECT id, module_id, title, description, sort_order
		FROM units
		WHERE module_id = ?
		ORDER BY sort_order ASC
	`

	rows, err := r.db.QueryContext(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		var unit models.Unit
		var description sql.NullString
		err := rows.Scan(
			&unit.ID,
			&unit.ModuleID,
			&unit.Title,
			&description,
			&unit.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		unit.Description = description.String
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating units: %w", err)
	}

	return units, nil
}

// ListContent retrieves the content items of a unit ordered by sort order
func (r *catalogRepository) ListContent(ctx context.Context, unitID string) ([]models.ContentItem, error) {
	query := `
		SELECT id, unit_id, content_type, title, sort_order, points, payload
		FROM unit_contents
		WHERE unit_id = ?
		ORDER BY sort_order ASC
	`

	rows, err := r.db.QueryContext(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unit contents: %w", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		var payload []byte
		err := rows.Scan(
			&item.ID,
			&item.UnitID,
			&item.ContentType,
			&item.Title,
			&item.SortOrder,
			&item.Points,
			&payload,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit content: %w", err)
		}
		if len(payload) > 0 {
			item.Payload = json.RawMessage(payload)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit contents: %w", err)
	}

	return items, nil
}

// GetModule retrieves a module with the IDs of its units
func (r *catalogRepository) GetModule(ctx context.Context, moduleID string) (*models.Module, error) {
	query := `
		SELECT id, title, description, topic, total_points
		FROM modules
		WHERE id = ?
		LIMIT 1
	`

	var module models.Module
	var description, topic sql.NullString
	err := r.db.QueryRowContext(ctx, query, moduleID).Scan(
		&module.ID,
		&module.Title,
		&description,
		&topic,
		&module.TotalPoints,
	)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("module not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module: %w", err)
	}
	module.Description = description.String
	module.Topic = topic.String

	units, err := r.ListUnits(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	for _, unit := range units {
		module.UnitIDs = append(module.UnitIDs, unit.ID)
	}

	return &module, nil
}
