package progress

import (
	"cmp"
	"context"
	"fmt"

	"github.com/learnpath/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// allContentCompleted reports whether every item has a COMPLETED progress row.
// An empty unit is never complete.
func allContentCompleted(items []models.ContentItem, rows []models.ContentProgress) bool {
	if len(items) == 0 {
		return false
	}
	completed := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Status == models.ProgressStatusCompleted {
			completed[row.UnitContentID] = true
		}
	}
	for _, item := range items {
		if !completed[item.ID] {
			return false
		}
	}
	return true
}

// allUnitsCompleted reports whether every unit has a COMPLETED progress row.
// A module without units is never complete.
func allUnitsCompleted(units []models.Unit, rows []models.UnitProgress) bool {
	if len(units) == 0 {
		return false
	}
	completed := make(map[string]bool, len(rows))
	for _, row := range rows {
		if row.Status == models.ProgressStatusCompleted {
			completed[row.UnitID] = true
		}
	}
	for _, unit := range units {
		if !completed[unit.ID] {
			return false
		}
	}
	return true
}

func (s *Session) dispatch(ctx context.Context, ev Event) {
	if err := s.events.Dispatch(ctx, ev); err != nil {
		s.logger.Warn("cascade event handler failed",
			zap.String("event", string(ev.Type)),
			zap.String("module_id", ev.ModuleID),
			zap.String("unit_id", ev.UnitID),
			zap.Error(err),
		)
	}
}

// FinalizeUnit completes the unit's progress when every content item of the unit is completed,
// then runs the module check before updating the session's cache.
// Returns whether this call completed the unit.
func (s *Session) FinalizeUnit(ctx context.Context, unitID, moduleID string) (bool, error) {
	var items []models.ContentItem
	var rows []models.ContentProgress

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.catalog.ListContent(gctx, unitID)
		if err != nil {
			return fmt.Errorf("failed to list unit content: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = s.store.ListContentProgressByUnit(gctx, unitID)
		if err != nil {
			return fmt.Errorf("failed to list content progress: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	if !allContentCompleted(items, rows) {
		return false, nil
	}

	up, err := s.getOrCreateUnitProgress(ctx, unitID, moduleID)
	if err != nil {
		return false, err
	}
	if up.Status == models.ProgressStatusCompleted {
		return false, nil
	}

	updated, err := s.store.UpdateUnitProgress(ctx, up.ID, models.UpdateUnitProgressRequest{
		ModuleID: moduleID,
		UnitID:   unitID,
		Status:   models.ProgressStatusCompleted,
	})
	if err != nil {
		return false, fmt.Errorf("failed to complete unit progress: %w", err)
	}

	s.dispatch(ctx, Event{Type: EventUnitCompleted, ModuleID: moduleID, UnitID: unitID})

	if err := ctx.Err(); err != nil {
		return true, err
	}
	s.unitProgress = updated
	return true, nil
}

// FinalizeUnitIfComplete runs FinalizeUnit as background reconciliation: failures are logged
// and handed to the reconciler, never returned.
func (s *Session) FinalizeUnitIfComplete(ctx context.Context, unitID, moduleID string) bool {
	done, err := s.FinalizeUnit(ctx, unitID, moduleID)
	if err == nil {
		return done
	}

	s.logger.Error("failed to finalize unit",
		zap.String("unit_id", unitID),
		zap.String("module_id", moduleID),
		zap.Error(err),
	)
	if s.reconciler != nil && ctx.Err() == nil {
		if err := s.reconciler.ScheduleUnitFinalization(ctx, unitID, moduleID); err != nil {
			s.logger.Error("failed to schedule unit finalization", zap.String("unit_id", unitID), zap.Error(err))
		}
	}
	return done
}

// FinalizeModule completes the module's progress when every unit of the module is completed.
// Returns whether this call completed the module.
func (s *Session) FinalizeModule(ctx context.Context, moduleID string) (bool, error) {
	var units []models.Unit
	var rows []models.UnitProgress
	cachedUnits := s.moduleID == moduleID && len(s.units) > 0
	if cachedUnits {
		units = s.units
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.ListUnitProgressByModule(gctx, moduleID)
		if err != nil {
			return fmt.Errorf("failed to list unit progress: %w", err)
		}
		return nil
	})
	if !cachedUnits {
		g.Go(func() error {
			var err error
			units, err = s.catalog.ListUnits(gctx, moduleID)
			if err != nil {
				return fmt.Errorf("failed to list units: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	if !allUnitsCompleted(units, rows) {
		return false, nil
	}

	mp, err := s.GetOrCreateModuleProgress(ctx, moduleID)
	if err != nil {
		return false, err
	}
	if mp.Status == models.ProgressStatusCompleted {
		return false, nil
	}

	status := models.ProgressStatusCompleted
	updated, err := s.store.PatchModuleProgress(ctx, mp.ID, models.PatchModuleProgressRequest{Status: &status})
	if err != nil {
		return false, fmt.Errorf("failed to complete module progress: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return true, err
	}
	s.moduleProgress = updated

	s.dispatch(ctx, Event{Type: EventModuleCompleted, ModuleID: moduleID, Points: updated.EarnedPoints})
	return true, nil
}

// FinalizeModuleIfComplete runs FinalizeModule as background reconciliation: failures are
// logged and handed to the reconciler, never returned.
func (s *Session) FinalizeModuleIfComplete(ctx context.Context, moduleID string) bool {
	done, err := s.FinalizeModule(ctx, moduleID)
	if err == nil {
		return done
	}

	s.logger.Error("failed to finalize module", zap.String("module_id", moduleID), zap.Error(err))
	if s.reconciler != nil && ctx.Err() == nil {
		if err := s.reconciler.ScheduleModuleFinalization(ctx, moduleID); err != nil {
			s.logger.Error("failed to schedule module finalization", zap.String("module_id", moduleID), zap.Error(err))
		}
	}
	return done
}

// VisitContent records that the learner opened "contentID": module and unit are marked started,
// the content gets a progress record and the module's last visited pointers move to it.
// Failures are logged.
func (s *Session) VisitContent(ctx context.Context, contentID string, opts NavigateOptions) {
	unitID := cmp.Or(opts.UnitID, s.unitID)
	moduleID := cmp.Or(opts.ModuleID, s.moduleID)
	if unitID == "" || moduleID == "" {
		s.logger.Warn("cannot record visit: no unit or module", zap.String("content_id", contentID))
		return
	}
	s.moduleID = moduleID
	s.unitID = unitID

	s.EnsureModuleStarted(ctx)
	s.EnsureUnitStarted(ctx, unitID)

	if _, err := s.getOrCreateContentProgress(ctx, unitID, contentID); err != nil {
		s.logger.Warn("failed to record content visit", zap.String("content_id", contentID), zap.Error(err))
	}

	mp, err := s.GetOrCreateModuleProgress(ctx, moduleID)
	if err != nil {
		s.logger.Warn("failed to load module progress", zap.String("module_id", moduleID), zap.Error(err))
		return
	}
	if mp.LastVisitedUnitID == unitID && mp.LastVisitedContentID == contentID {
		return
	}

	updated, err := s.store.PatchModuleProgress(ctx, mp.ID, models.PatchModuleProgressRequest{
		LastVisitedUnitID:    &unitID,
		LastVisitedContentID: &contentID,
	})
	if err != nil {
		s.logger.Warn("failed to update last visited content", zap.String("module_id", moduleID), zap.Error(err))
		return
	}
	if ctx.Err() == nil {
		s.moduleProgress = updated
	}
}

// CompleteContent moves the content's progress to COMPLETED, credits its points to the module
// once and starts the completion cascade. Returns whether this call made the transition;
// completing an already completed item changes nothing.
func (s *Session) CompleteContent(ctx context.Context, contentID string, opts NavigateOptions) (bool, error) {
	unitID := cmp.Or(opts.UnitID, s.unitID)
	moduleID := cmp.Or(opts.ModuleID, s.moduleID)
	if unitID == "" {
		return false, ErrNoActiveUnit
	}
	if moduleID == "" {
		return false, ErrNoActiveModule
	}
	s.moduleID = moduleID
	s.unitID = unitID

	contents, err := s.loadUnitContent(ctx, unitID)
	if err != nil {
		return false, err
	}
	idx := indexOfContent(contents, contentID)
	if idx == -1 {
		return false, fmt.Errorf("%w: %s", ErrContentNotFound, contentID)
	}
	item := contents[idx]

	cp, err := s.getOrCreateContentProgress(ctx, unitID, contentID)
	if err != nil {
		return false, err
	}
	if cp.Status == models.ProgressStatusCompleted {
		return false, nil
	}

	status := models.ProgressStatusCompleted
	points := item.Points
	_, err = s.store.UpdateContentProgress(ctx, cp.ID, models.UpdateContentProgressRequest{
		Status: &status,
		Points: &points,
	})
	if models.IsConflict(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to complete content progress: %w", err)
	}

	s.addEarnedPoints(ctx, moduleID, points)
	s.dispatch(ctx, Event{Type: EventContentCompleted, ModuleID: moduleID, UnitID: unitID, ContentID: contentID, Points: points})
	return true, nil
}

// addEarnedPoints credits "points" to the module progress. Failures are logged.
func (s *Session) addEarnedPoints(ctx context.Context, moduleID string, points int) {
	if points <= 0 {
		return
	}

	mp, err := s.GetOrCreateModuleProgress(ctx, moduleID)
	if err != nil {
		s.logger.Error("failed to load module progress for points", zap.String("module_id", moduleID), zap.Error(err))
		return
	}

	var updated *models.ModuleProgress
	if acc, ok := s.store.(PointsAccumulator); ok {
		updated, err = acc.AddEarnedPoints(ctx, mp.ID, points)
	} else {
		total := mp.EarnedPoints + points
		updated, err = s.store.PatchModuleProgress(ctx, mp.ID, models.PatchModuleProgressRequest{EarnedPoints: &total})
	}
	if err != nil {
		s.logger.Error("failed to update earned points",
			zap.String("module_id", moduleID),
			zap.Int("points", points),
			zap.Error(err),
		)
		return
	}
	if ctx.Err() == nil {
		s.moduleProgress = updated
	}
}
