package progress

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/learnpath/backend/internal/models"
	"go.uber.org/zap"
)

// ContentPath returns the page of a content item
func ContentPath(item models.ContentItem) string {
	return fmt.Sprintf("/user/%s/%s", item.ContentType, item.ID)
}

// ModulePath returns the overview page of a module
func ModulePath(moduleID string) string {
	return fmt.Sprintf("/user/modules/%s", moduleID)
}

func sortUnits(units []models.Unit) []models.Unit {
	sorted := slices.Clone(units)
	slices.SortStableFunc(sorted, func(a, b models.Unit) int { return cmp.Compare(a.SortOrder, b.SortOrder) })
	return sorted
}

func sortContents(items []models.ContentItem) []models.ContentItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b models.ContentItem) int { return cmp.Compare(a.SortOrder, b.SortOrder) })
	return sorted
}

func indexOfUnit(units []models.Unit, unitID string) int {
	return slices.IndexFunc(units, func(u models.Unit) bool { return u.ID == unitID })
}

func indexOfContent(items []models.ContentItem, contentID string) int {
	return slices.IndexFunc(items, func(c models.ContentItem) bool { return c.ID == contentID })
}

// loadUnits returns the sorted units of "moduleID", fetching and caching them when the
// cache holds another module or nothing
func (s *Session) loadUnits(ctx context.Context, moduleID string) ([]models.Unit, error) {
	if s.moduleID == moduleID && len(s.units) > 0 {
		return s.units, nil
	}

	units, err := s.catalog.ListUnits(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.units = sortUnits(units)
	s.moduleID = moduleID
	return s.units, nil
}

// loadUnitContent returns the sorted content of "unitID", reading through the unit content cache
func (s *Session) loadUnitContent(ctx context.Context, unitID string) ([]models.ContentItem, error) {
	cachedUnitID, cached := s.unitContent.snapshot()
	if cachedUnitID == unitID && len(cached) > 0 {
		return cached, nil
	}
	return s.fetchUnitContent(ctx, unitID)
}

// fetchUnitContent always fetches the content of "unitID" and seeds the unit content cache
func (s *Session) fetchUnitContent(ctx context.Context, unitID string) ([]models.ContentItem, error) {
	items, err := s.catalog.ListContent(ctx, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unit content: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sorted := sortContents(items)
	s.unitContent.SetUnitContent(unitID, sorted)
	return sorted, nil
}

// openContent shows a content item: quizzes open the quiz modal, anything else is a page
func (s *Session) openContent(ctx context.Context, unitID string, item models.ContentItem) {
	if ctx.Err() != nil {
		return
	}
	if item.ContentType == models.ContentTypeQuiz {
		s.quizModal.OpenModal(ctx, item.ID)
		return
	}
	s.router.Navigate(ContentPath(item), NavigationState{UnitID: unitID})
}

// GoToNextContent moves the learner past "currentContentID": to the next item of the unit,
// to the unit completion modal when the unit is over, or back to the module page when the
// module is over. Unresolvable scope and fetch failures are logged and leave the learner
// where they are; the returned error is non-nil only when ctx is done.
func (s *Session) GoToNextContent(ctx context.Context, currentContentID string, opts NavigateOptions) error {
	unitID := cmp.Or(opts.UnitID, s.unitID)
	moduleID := cmp.Or(opts.ModuleID, s.moduleID)
	lastVisitedUnitID := ""
	if s.moduleProgress != nil {
		lastVisitedUnitID = s.moduleProgress.LastVisitedUnitID
		if moduleID == "" {
			moduleID = s.moduleProgress.ModuleID
		}
	}
	unitID = cmp.Or(unitID, lastVisitedUnitID)

	if unitID == "" && moduleID == "" {
		s.logger.Warn("cannot go to next content: no unit or module", zap.String("content_id", currentContentID))
		return nil
	}
	if moduleID == "" {
		s.logger.Warn("cannot go to next content: no module", zap.String("unit_id", unitID))
		return nil
	}

	units, err := s.loadUnits(ctx, moduleID)
	if err != nil {
		s.logger.Error("failed to load units", zap.String("module_id", moduleID), zap.Error(err))
		return ctx.Err()
	}

	unitIndex := indexOfUnit(units, unitID)
	if unitIndex == -1 {
		if lastVisitedUnitID == "" {
			lastVisitedUnitID = s.lastVisitedUnit(ctx, moduleID)
		}
		if lastVisitedUnitID != "" {
			unitID = lastVisitedUnitID
			unitIndex = indexOfUnit(units, unitID)
		}
	}
	if unitIndex == -1 {
		s.logger.Warn("current unit not found in module",
			zap.String("module_id", moduleID),
			zap.String("unit_id", unitID),
		)
		return nil
	}
	s.unitID = unitID

	contents, err := s.loadUnitContent(ctx, unitID)
	if err != nil {
		s.logger.Error("failed to load unit content", zap.String("unit_id", unitID), zap.Error(err))
		return ctx.Err()
	}

	contentIndex := indexOfContent(contents, currentContentID)
	if contentIndex == -1 {
		s.logger.Warn("current content not found in unit",
			zap.String("unit_id", unitID),
			zap.String("content_id", currentContentID),
		)
		return nil
	}

	if contentIndex+1 < len(contents) {
		s.openContent(ctx, unitID, contents[contentIndex+1])
		return ctx.Err()
	}

	if unitIndex+1 < len(units) {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.completionModal.Open(units[unitIndex+1].ID, moduleID)
		s.markUnitCompleted(ctx, unitID, moduleID)
		return ctx.Err()
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	s.router.Navigate(ModulePath(moduleID), NavigationState{})
	return nil
}

// lastVisitedUnit returns the last visited unit stored for "moduleID", reading the module
// progress when the session has none cached. A missing record means no pointer.
func (s *Session) lastVisitedUnit(ctx context.Context, moduleID string) string {
	if s.moduleProgress != nil && s.moduleProgress.ModuleID == moduleID {
		return s.moduleProgress.LastVisitedUnitID
	}
	mp, err := s.store.GetModuleProgress(ctx, moduleID)
	if err != nil {
		if !models.IsNotFound(err) {
			s.logger.Error("failed to get module progress", zap.String("module_id", moduleID), zap.Error(err))
		}
		return ""
	}
	if ctx.Err() == nil {
		s.moduleProgress = mp
	}
	return mp.LastVisitedUnitID
}

// markUnitCompleted moves the unit's progress to COMPLETED. Failures are logged.
func (s *Session) markUnitCompleted(ctx context.Context, unitID, moduleID string) {
	up, err := s.getOrCreateUnitProgress(ctx, unitID, moduleID)
	if err != nil {
		s.logger.Error("failed to get unit progress", zap.String("unit_id", unitID), zap.Error(err))
		return
	}
	if up.Status == models.ProgressStatusCompleted {
		return
	}

	updated, err := s.store.UpdateUnitProgress(ctx, up.ID, models.UpdateUnitProgressRequest{
		ModuleID: moduleID,
		UnitID:   unitID,
		Status:   models.ProgressStatusCompleted,
	})
	if err != nil {
		s.logger.Error("failed to complete unit progress", zap.String("unit_id", unitID), zap.Error(err))
		return
	}
	if ctx.Err() == nil {
		s.unitProgress = updated
	}
}

// IsNextContent reports whether the active unit has content after "currentContentID".
// The unit content cache is hydrated when empty; nothing else changes.
func (s *Session) IsNextContent(ctx context.Context, currentContentID string) (bool, error) {
	if s.unitID == "" {
		return false, nil
	}

	contents, err := s.loadUnitContent(ctx, s.unitID)
	if err != nil {
		return false, err
	}

	idx := indexOfContent(contents, currentContentID)
	return idx != -1 && idx+1 < len(contents), nil
}

// GoToStart opens the first content item of the active module's first unit.
// "preloaded" skips the fetches when InitFirstUnitAndContentProgress already resolved them.
func (s *Session) GoToStart(ctx context.Context, preloaded *StartData) error {
	var unitID string
	var contents []models.ContentItem

	if preloaded != nil && preloaded.UnitID != "" && len(preloaded.Contents) > 0 {
		unitID = preloaded.UnitID
		contents = sortContents(preloaded.Contents)
	} else {
		if s.moduleID == "" {
			return ErrNoActiveModule
		}
		units, err := s.loadUnits(ctx, s.moduleID)
		if err != nil {
			return err
		}
		if len(units) == 0 {
			return ErrModuleHasNoUnits
		}

		unitID = units[0].ID
		contents, err = s.catalog.ListContent(ctx, unitID)
		if err != nil {
			return fmt.Errorf("failed to list unit content: %w", err)
		}
		contents = sortContents(contents)
	}

	if len(contents) == 0 {
		return ErrUnitHasNoContent
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.unitID = unitID
	s.unitContent.SetUnitContent(unitID, contents)
	s.openContent(ctx, unitID, contents[0])
	return ctx.Err()
}

// GoToLastVisited reopens "contentID" of "unitID". It fails with ErrContentNotFound when the
// content was removed from the unit since the learner's last visit.
func (s *Session) GoToLastVisited(ctx context.Context, unitID, contentID string) error {
	contents, err := s.fetchUnitContent(ctx, unitID)
	if err != nil {
		return err
	}

	idx := indexOfContent(contents, contentID)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrContentNotFound, contentID)
	}

	s.unitID = unitID
	s.openContent(ctx, unitID, contents[idx])
	return ctx.Err()
}

// GoToFirstContent opens the first content item of the active unit
func (s *Session) GoToFirstContent(ctx context.Context) error {
	if s.unitID == "" {
		return ErrNoActiveUnit
	}

	contents, err := s.fetchUnitContent(ctx, s.unitID)
	if err != nil {
		return err
	}
	if len(contents) == 0 {
		return ErrUnitHasNoContent
	}

	s.openContent(ctx, s.unitID, contents[0])
	return ctx.Err()
}

// InitFirstUnitAndContentProgress creates progress for the first unit of the active module and
// its first content item, and returns them so GoToStart does not fetch again.
// Records that already exist are fine; other creation failures are logged.
func (s *Session) InitFirstUnitAndContentProgress(ctx context.Context) (*StartData, error) {
	if s.moduleID == "" {
		return nil, ErrNoActiveModule
	}

	units, err := s.loadUnits(ctx, s.moduleID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, ErrModuleHasNoUnits
	}
	first := units[0]

	contents, err := s.fetchUnitContent(ctx, first.ID)
	if err != nil {
		return nil, err
	}

	_, err = s.store.CreateUnitProgress(ctx, models.CreateUnitProgressRequest{UnitID: first.ID, ModuleID: s.moduleID})
	if err != nil && !models.IsConflict(err) {
		s.logger.Error("failed to create first unit progress", zap.String("unit_id", first.ID), zap.Error(err))
	}

	if len(contents) > 0 {
		_, err = s.store.CreateContentProgress(ctx, models.CreateContentProgressRequest{
			UnitID:        first.ID,
			UnitContentID: contents[0].ID,
			Status:        models.ProgressStatusInProgress,
		})
		if err != nil && !models.IsConflict(err) {
			s.logger.Error("failed to create first content progress", zap.String("content_id", contents[0].ID), zap.Error(err))
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.unitID = first.ID
	return &StartData{UnitID: first.ID, Contents: contents}, nil
}

// ContinueFromLastVisited re-reads the active module's progress and reopens the last visited
// content. Missing progress or missing pointers are logged and do nothing.
func (s *Session) ContinueFromLastVisited(ctx context.Context) error {
	if s.moduleID == "" {
		return ErrNoActiveModule
	}

	mp, err := s.store.GetModuleProgress(ctx, s.moduleID)
	if err != nil {
		if models.IsNotFound(err) {
			s.moduleProgress = nil
			s.logger.Warn("no module progress to continue from", zap.String("module_id", s.moduleID))
			return nil
		}
		return fmt.Errorf("failed to get module progress: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.moduleProgress = mp

	if mp.LastVisitedUnitID == "" || mp.LastVisitedContentID == "" {
		s.logger.Warn("module progress has no last visited content",
			zap.String("module_id", s.moduleID),
			zap.String("progress_id", mp.ID),
		)
		return nil
	}

	return s.GoToLastVisited(ctx, mp.LastVisitedUnitID, mp.LastVisitedContentID)
}
