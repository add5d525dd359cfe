package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/learnpath/backend/internal/metrics"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"github.com/learnpath/backend/internal/tasks"
	"go.uber.org/zap"
)

const (
	// sweepCursorKey holds the position the next sweep resumes from
	sweepCursorKey = "progress:sweep:cursor"
	sweepCursorTTL = 7 * 24 * time.Hour
)

// SweepRepository defines the interface for the reconciliation sweep repository
type SweepRepository interface {
	// ListInProgressModules retrieves up to "limit" IN_PROGRESS module progress rows,
	// least recently updated first, starting after "after" when it is not nil
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListInProgressModules(ctx context.Context, after *models.SweepCursor, limit int) ([]models.ModuleProgressRef, error)
}

// CursorStore is the part of *redis.Client keeping the sweep position between sweeps
type CursorStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// StoreFactory returns the progress store of one learner
type StoreFactory func(userID int) progress.ProgressStore

// Worker handles reconciliation task processing
type Worker struct {
	logger    *zap.Logger
	catalog   progress.ContentCatalog
	stores    StoreFactory
	sweepRepo SweepRepository
	cursors   CursorStore
	tasks     *tasks.Client
	batchSize int
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	catalog progress.ContentCatalog,
	stores StoreFactory,
	sweepRepo SweepRepository,
	cursors CursorStore,
	taskClient *tasks.Client,
	batchSize int,
) *Worker {
	return &Worker{
		logger:    logger,
		catalog:   catalog,
		stores:    stores,
		sweepRepo: sweepRepo,
		cursors:   cursors,
		tasks:     taskClient,
		batchSize: batchSize,
	}
}

// newSession builds a session for the learner of a task.
// A cascade check failing again inside the task is handed back to the queue.
func (w *Worker) newSession(userID int, moduleID, unitID string) *progress.Session {
	logger := w.logger.With(zap.Int("user_id", userID))
	session := progress.NewSession(progress.Dependencies{
		Catalog:    w.catalog,
		Store:      w.stores(userID),
		Router:     progress.NewRecorder(),
		Reconciler: w.tasks.ForUser(userID),
		Logger:     logger,
	}, moduleID, unitID)
	metrics.Observe(session)
	return session
}

// HandleFinalizeUnit re-runs the unit completion check of one learner
func (w *Worker) HandleFinalizeUnit(ctx context.Context, t *asynq.Task) (err error) {
	defer func() { metrics.TaskProcessed(t.Type(), err) }()

	var payload tasks.FinalizeUnitPayload
	if err := tasks.ParsePayload(t, &payload); err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	if payload.UserID <= 0 || payload.UnitID == "" || payload.ModuleID == "" {
		return fmt.Errorf("incomplete finalize unit payload: %w", asynq.SkipRetry)
	}

	session := w.newSession(payload.UserID, payload.ModuleID, payload.UnitID)
	completed, err := session.FinalizeUnit(ctx, payload.UnitID, payload.ModuleID)
	if err != nil {
		return fmt.Errorf("failed to finalize unit %s: %w", payload.UnitID, err)
	}

	w.logger.Info("Unit finalization checked",
		zap.Int("user_id", payload.UserID),
		zap.String("unit_id", payload.UnitID),
		zap.Bool("completed", completed),
	)
	return nil
}

// HandleFinalizeModule re-runs the module completion check of one learner
func (w *Worker) HandleFinalizeModule(ctx context.Context, t *asynq.Task) (err error) {
	defer func() { metrics.TaskProcessed(t.Type(), err) }()

	var payload tasks.FinalizeModulePayload
	if err := tasks.ParsePayload(t, &payload); err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	if payload.UserID <= 0 || payload.ModuleID == "" {
		return fmt.Errorf("incomplete finalize module payload: %w", asynq.SkipRetry)
	}

	session := w.newSession(payload.UserID, payload.ModuleID, "")
	completed, err := session.FinalizeModule(ctx, payload.ModuleID)
	if err != nil {
		return fmt.Errorf("failed to finalize module %s: %w", payload.ModuleID, err)
	}

	w.logger.Info("Module finalization checked",
		zap.Int("user_id", payload.UserID),
		zap.String("module_id", payload.ModuleID),
		zap.Bool("completed", completed),
	)
	return nil
}

// HandleSweep enqueues a module check for every IN_PROGRESS module progress row of the batch.
// Each sweep continues where the previous one stopped and starts over after the last row.
func (w *Worker) HandleSweep(ctx context.Context, t *asynq.Task) (err error) {
	defer func() { metrics.TaskProcessed(t.Type(), err) }()

	var payload tasks.SweepPayload
	if err := tasks.ParsePayload(t, &payload); err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	limit := payload.BatchSize
	if limit <= 0 {
		limit = w.batchSize
	}

	after := w.loadSweepCursor(ctx)
	refs, err := w.sweepRepo.ListInProgressModules(ctx, after, limit)
	if err != nil {
		return err
	}

	var errs []error
	for _, ref := range refs {
		if err := w.tasks.EnqueueFinalizeModule(ctx, ref.UserID, ref.ModuleID); err != nil {
			w.logger.Error("Failed to enqueue module finalization",
				zap.Int("user_id", ref.UserID),
				zap.String("module_id", ref.ModuleID),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		w.saveSweepCursor(ctx, refs, limit)
	}

	w.logger.Info("Reconciliation sweep done",
		zap.Int("modules", len(refs)),
		zap.Int("failed", len(errs)),
		zap.Bool("resumed", after != nil),
	)
	return errors.Join(errs...)
}

// loadSweepCursor returns the stored sweep position, or nil to start from the oldest row
func (w *Worker) loadSweepCursor(ctx context.Context) *models.SweepCursor {
	if w.cursors == nil {
		return nil
	}
	data, err := w.cursors.Get(ctx, sweepCursorKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			w.logger.Warn("Failed to read sweep cursor", zap.Error(err))
		}
		return nil
	}
	var cursor models.SweepCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		w.logger.Warn("Discarding malformed sweep cursor", zap.Error(err))
		return nil
	}
	return &cursor
}

// saveSweepCursor stores the position after the batch. A short batch reached the end,
// so the cursor is cleared and the next sweep starts over.
func (w *Worker) saveSweepCursor(ctx context.Context, refs []models.ModuleProgressRef, limit int) {
	if w.cursors == nil {
		return
	}
	if len(refs) < limit {
		if err := w.cursors.Del(ctx, sweepCursorKey).Err(); err != nil {
			w.logger.Warn("Failed to reset sweep cursor", zap.Error(err))
		}
		return
	}
	data, err := json.Marshal(refs[len(refs)-1].Cursor())
	if err != nil {
		w.logger.Warn("Failed to encode sweep cursor", zap.Error(err))
		return
	}
	if err := w.cursors.Set(ctx, sweepCursorKey, data, sweepCursorTTL).Err(); err != nil {
		w.logger.Warn("Failed to store sweep cursor", zap.Error(err))
	}
}
