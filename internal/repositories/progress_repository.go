package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/learnpath/backend/internal/models"
)

// mysqlDuplicateEntry is the MySQL error number of a unique key violation
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a unique key violation
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// progressRepository stores the progress records of a single learner
type progressRepository struct {
	db     *sql.DB
	userID int
}

// NewProgressRepository creates a progress repository bound to the learner "userID"
func NewProgressRepository(db *sql.DB, userID int) *progressRepository {
	return &progressRepository{
		db:     db,
		userID: userID,
	}
}

const moduleProgressColumns = `id, user_id, module_id, status, last_visited_unit_id, last_visited_content_id, earned_points`

func scanModuleProgress(row interface{ Scan(...any) error }) (*models.ModuleProgress, error) {
	var mp models.ModuleProgress
	var lastUnit, lastContent sql.NullString
	err := row.Scan(
		&mp.ID,
		&mp.UserID,
		&mp.ModuleID,
		&mp.Status,
		&lastUnit,
		&lastContent,
		&mp.EarnedPoints,
	)
	if err != nil {
		return nil, err
	}
	mp.LastVisitedUnitID = lastUnit.String
	mp.LastVisitedContentID = lastContent.String
	return &mp, nil
}

// GetModuleProgress retrieves the learner's progress for a module
func (r *progressRepository) GetModuleProgress(ctx context.Context, moduleID string) (*models.ModuleProgress, error) {
	query := `
		SELECT ` + moduleProgressColumns + `
		FROM module_progress
		WHERE user_id = ? AND module_id = ?
		LIMIT 1
	`

	mp, err := scanModuleProgress(r.db.QueryRowContext(ctx, query, r.userID, moduleID))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("module progress not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module progress: %w", err)
	}

	return mp, nil
}

func (r *progressRepository) getModuleProgressByID(ctx context.Context, progressID string) (*models.ModuleProgress, error) {
	query := `
		SELECT ` + moduleProgressColumns + `
		FROM module_progress
		WHERE id = ? AND user_id = ?
		LIMIT 1
	`

	mp, err := scanModuleProgress(r.db.QueryRowContext(ctx, query, progressID, r.userID))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("module progress not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get module progress: %w", err)
	}

	return mp, nil
}

// CreateModuleProgress creates module progress with status IN_PROGRESS
func (r *progressRepository) CreateModuleProgress(ctx context.Context, req models.CreateModuleProgressRequest) (*models.ModuleProgress, error) {
	query := `
		INSERT INTO module_progress (id, user_id, module_id, status, last_visited_unit_id, last_visited_content_id, earned_points)
		VALUES (?, ?, ?, ?, ?, ?, 0)
	`

	mp := &models.ModuleProgress{
		ID:                   uuid.NewString(),
		UserID:               r.userID,
		ModuleID:             req.ModuleID,
		Status:               models.ProgressStatusInProgress,
		LastVisitedUnitID:    req.LastVisitedUnit,
		LastVisitedContentID: req.LastVisitedContent,
	}

	_, err := r.db.ExecContext(ctx, query,
		mp.ID,
		mp.UserID,
		mp.ModuleID,
		mp.Status,
		nullString(mp.LastVisitedUnitID),
		nullString(mp.LastVisitedContentID),
	)
	if isDuplicateEntry(err) {
		return nil, models.NewConflictError("module progress already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create module progress: %w", err)
	}

	return mp, nil
}

// PatchModuleProgress applies a partial update to module progress and returns the stored record
func (r *progressRepository) PatchModuleProgress(ctx context.Context, progressID string, req models.PatchModuleProgressRequest) (*models.ModuleProgress, error) {
	var setParts []string
	var args []any

	if req.Status != nil {
		setParts = append(setParts, "status = ?")
		args = append(args, *req.Status)
	}
	if req.LastVisitedUnitID != nil {
		setParts = append(setParts, "last_visited_unit_id = ?")
		args = append(args, nullString(*req.LastVisitedUnitID))
	}
	if req.LastVisitedContentID != nil {
		setParts = append(setParts, "last_visited_content_id = ?")
		args = append(args, nullString(*req.LastVisitedContentID))
	}
	if req.EarnedPoints != nil {
		setParts = append(setParts, "earned_points = ?")
		args = append(args, *req.EarnedPoints)
	}

	if len(setParts) > 0 {
		query := fmt.Sprintf(`
			UPDATE module_progress
			SET %s
			WHERE id = ? AND user_id = ?
		`, strings.Join(setParts, ", "))
		args = append(args, progressID, r.userID)

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("failed to update module progress: %w", err)
		}
	}

	return r.getModuleProgressByID(ctx, progressID)
}

// AddEarnedPoints increments the earned points of module progress in place and returns the stored record
func (r *progressRepository) AddEarnedPoints(ctx context.Context, progressID string, points int) (*models.ModuleProgress, error) {
	query := `
		UPDATE module_progress
		SET earned_points = earned_points + ?
		WHERE id = ? AND user_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, points, progressID, r.userID); err != nil {
		return nil, fmt.Errorf("failed to add earned points: %w", err)
	}

	return r.getModuleProgressByID(ctx, progressID)
}

const unitProgressColumns = `id, user_id, unit_id, module_id, status`

func scanUnitProgress(row interface{ Scan(...any) error }) (*models.UnitProgress, error) {
	var up models.UnitProgress
	err := row.Scan(
		&up.ID,
		&up.UserID,
		&up.UnitID,
		&up.ModuleID,
		&up.Status,
	)
	if err != nil {
		return nil, err
	}
	return &up, nil
}

// GetUnitProgress retrieves the learner's progress for a unit
func (r *progressRepository) GetUnitProgress(ctx context.Context, unitID string) (*models.UnitProgress, error) {
	query := `
		SELECT ` + unitProgressColumns + `
		FROM unit_progress
		WHERE user_id = ? AND unit_id = ?
		LIMIT 1
	`

	up, err := scanUnitProgress(r.db.QueryRowContext(ctx, query, r.userID, unitID))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("unit progress not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit progress: %w", err)
	}

	return up, nil
}

// CreateUnitProgress creates unit progress with status IN_PROGRESS
func (r *progressRepository) CreateUnitProgress(ctx context.Context, req models.CreateUnitProgressRequest) (*models.UnitProgress, error) {
	query := `
		INSERT INTO unit_progress (id, user_id, unit_id, module_id, status)
		VALUES (?, ?, ?, ?, ?)
	`

	up := &models.UnitProgress{
		ID:       uuid.NewString(),
		UserID:   r.userID,
		UnitID:   req.UnitID,
		ModuleID: req.ModuleID,
		Status:   models.ProgressStatusInProgress,
	}

	_, err := r.db.ExecContext(ctx, query, up.ID, up.UserID, up.UnitID, up.ModuleID, up.Status)
	if isDuplicateEntry(err) {
		return nil, models.NewConflictError("unit progress already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create unit progress: %w", err)
	}

	return up, nil
}

// UpdateUnitProgress sets the status of unit progress and returns the stored record
func (r *progressRepository) UpdateUnitProgress(ctx context.Context, progressID string, req models.UpdateUnitProgressRequest) (*models.UnitProgress, error) {
	query := `
		UPDATE unit_progress
		SET status = ?
		WHERE id = ? AND user_id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, req.Status, progressID, r.userID); err != nil {
		return nil, fmt.Errorf("failed to update unit progress: %w", err)
	}

	selectQuery := `
		SELECT ` + unitProgressColumns + `
		FROM unit_progress
		WHERE id = ? AND user_id = ?
		LIMIT 1
	`

	up, err := scanUnitProgress(r.db.QueryRowContext(ctx, selectQuery, progressID, r.userID))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("unit progress not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit progress: %w", err)
	}

	return up, nil
}

// ListUnitProgressByModule retrieves the learner's unit progress rows of a module
func (r *progressRepository) ListUnitProgressByModule(ctx context.Context, moduleID string) ([]models.UnitProgress, error) {
	query := `
		SELECT ` + unitProgressColumns + `
		FROM unit_progress
		WHERE user_id = ? AND module_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, r.userID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unit progress: %w", err)
	}
	defer rows.Close()

	var result []models.UnitProgress
	for rows.Next() {
		up, err := scanUnitProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit progress: %w", err)
		}
		result = append(result, *up)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit progress: %w", err)
	}

	return result, nil
}

const contentProgressColumns = `id, user_id, unit_id, unit_content_id, status, points`

func scanContentProgress(row interface{ Scan(...any) error }) (*models.ContentProgress, error) {
	var cp models.ContentProgress
	err := row.Scan(
		&cp.ID,
		&cp.UserID,
		&cp.UnitID,
		&cp.UnitContentID,
		&cp.Status,
		&cp.Points,
	)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// GetContentProgress retrieves the learner's progress for a content item
func (r *progressRepository) GetContentProgress(ctx context.Context, contentID string) (*models.ContentProgress, error) {
	query := `
		SELECT ` + contentProgressColumns + `
		FROM content_progress
		WHERE user_id = ? AND unit_content_id = ?
		LIMIT 1
	`

	cp, err := scanContentProgress(r.db.QueryRowContext(ctx, query, r.userID, contentID))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("content progress not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content progress: %w", err)
	}

	return cp, nil
}

func (r *progressRepository) getContentProgressByID(ctx context.Context, progressID string) (*models.ContentProgress, error) {
	query := `
		SELECT ` + contentProgressColumns + `
		FROM content_progress
		WHERE id = ? AND user_id = ?
		LIMIT 1
	`

	cp, err := scanContentProgress(r.db.QueryRowContext(ctx, query, progressID, r.userID))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("content progress not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content progress: %w", err)
	}

	return cp, nil
}

// CreateContentProgress creates content progress
func (r *progressRepository) CreateContentProgress(ctx context.Context, req models.CreateContentProgressRequest) (*models.ContentProgress, error) {
	query := `
		INSERT INTO content_progress (id, user_id, unit_id, unit_content_id, status, points)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	status := req.Status
	if status == "" {
		status = models.ProgressStatusInProgress
	}
	cp := &models.ContentProgress{
		ID:            uuid.NewString(),
		UserID:        r.userID,
		UnitID:        req.UnitID,
		UnitContentID: req.UnitContentID,
		Status:        status,
		Points:        req.Points,
	}

	_, err := r.db.ExecContext(ctx, query, cp.ID, cp.UserID, cp.UnitID, cp.UnitContentID, cp.Status, cp.Points)
	if isDuplicateEntry(err) {
		return nil, models.NewConflictError("content progress already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create content progress: %w", err)
	}

	return cp, nil
}

// UpdateContentProgress applies a partial update to content progress.
//
// Moving a record to COMPLETED only succeeds once: when the record is already COMPLETED
// the update fails with a conflict error, so two concurrent completions credit points once.
func (r *progressRepository) UpdateContentProgress(ctx context.Context, progressID string, req models.UpdateContentProgressRequest) (*models.ContentProgress, error) {
	var setParts []string
	var args []any

	if req.Status != nil {
		setParts = append(setParts, "status = ?")
		args = append(args, *req.Status)
	}
	if req.Points != nil {
		setParts = append(setParts, "points = ?")
		args = append(args, *req.Points)
	}

	if len(setParts) == 0 {
		return r.getContentProgressByID(ctx, progressID)
	}

	completing := req.Status != nil && *req.Status == models.ProgressStatusCompleted
	where := "id = ? AND user_id = ?"
	args = append(args, progressID, r.userID)
	if completing {
		where += " AND status <> ?"
		args = append(args, models.ProgressStatusCompleted)
	}

	query := fmt.Sprintf(`
		UPDATE content_progress
		SET %s
		WHERE %s
	`, strings.Join(setParts, ", "), where)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update content progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	cp, err := r.getContentProgressByID(ctx, progressID)
	if err != nil {
		return nil, err
	}
	if completing && rowsAffected == 0 {
		return nil, models.NewConflictError("content progress already completed")
	}

	return cp, nil
}

// ListContentProgressByUnit retrieves the learner's content progress rows of a unit
func (r *progressRepository) ListContentProgressByUnit(ctx context.Context, unitID string) ([]models.ContentProgress, error) {
	query := `
		SELECT ` + contentProgressColumns + `
		FROM content_progress
		WHERE user_id = ? AND unit_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, r.userID, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query content progress: %w", err)
	}
	defer rows.Close()

	var result []models.ContentProgress
	for rows.Next() {
		cp, err := scanContentProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content progress: %w", err)
		}
		result = append(result, *cp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content progress: %w", err)
	}

	return result, nil
}
