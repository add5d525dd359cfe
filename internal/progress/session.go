package progress

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/learnpath/backend/internal/models"
	"go.uber.org/zap"
)

var (
	// ErrModuleHasNoUnits is returned when a module to start has no units
	ErrModuleHasNoUnits = errors.New("module has no units")
	// ErrUnitHasNoContent is returned when a unit to open has no content
	ErrUnitHasNoContent = errors.New("unit has no content")
	// ErrContentNotFound is returned when a content item is no longer part of its unit
	ErrContentNotFound = errors.New("content not found in unit")
	// ErrNoActiveModule is returned when an operation needs a module and none is active
	ErrNoActiveModule = errors.New("no active module")
	// ErrNoActiveUnit is returned when an operation needs a unit and none is active
	ErrNoActiveUnit = errors.New("no active unit")
)

// Dependencies holds the collaborators of a Session.
// Catalog, Store and Router are required; the rest are created when nil.
type Dependencies struct {
	Catalog         ContentCatalog
	Store           ProgressStore
	Router          Router
	QuizModal       *QuizModal
	CompletionModal *UnitCompletionModal
	UnitContent     *UnitContent
	Reconciler      Reconciler
	Logger          *zap.Logger
}

// NavigateOptions override the active unit and module of a session for one call
type NavigateOptions struct {
	UnitID   string
	ModuleID string
}

// StartData is the first unit of a module with its sorted content
type StartData struct {
	UnitID   string
	Contents []models.ContentItem
}

// Session tracks one learner's position and progress inside a module.
//
// A Session is not safe for concurrent use: construct one per learner request.
// All of its fields are written only by its own methods.
type Session struct {
	catalog         ContentCatalog
	store           ProgressStore
	router          Router
	quizModal       *QuizModal
	completionModal *UnitCompletionModal
	unitContent     *UnitContent
	reconciler      Reconciler
	events          *Dispatcher
	logger          *zap.Logger

	units          []models.Unit
	moduleID       string
	unitID         string
	moduleProgress *models.ModuleProgress
	unitProgress   *models.UnitProgress
}

// NewSession creates a session scoped to "moduleID" and "unitID" (either may be empty)
func NewSession(deps Dependencies, moduleID, unitID string) *Session {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	quizModal := deps.QuizModal
	if quizModal == nil {
		quizModal = NewQuizModal(deps.Store, logger)
	}
	completionModal := deps.CompletionModal
	if completionModal == nil {
		completionModal = NewUnitCompletionModal()
	}
	unitContent := deps.UnitContent
	if unitContent == nil {
		unitContent = NewUnitContent()
	}

	s := &Session{
		catalog:         deps.Catalog,
		store:           deps.Store,
		router:          deps.Router,
		quizModal:       quizModal,
		completionModal: completionModal,
		unitContent:     unitContent,
		reconciler:      deps.Reconciler,
		events:          NewDispatcher(),
		logger:          logger,
		moduleID:        moduleID,
		unitID:          unitID,
	}

	s.events.Subscribe(EventContentCompleted, func(ctx context.Context, ev Event) error {
		s.FinalizeUnitIfComplete(ctx, ev.UnitID, ev.ModuleID)
		return nil
	})
	s.events.Subscribe(EventUnitCompleted, func(ctx context.Context, ev Event) error {
		s.FinalizeModuleIfComplete(ctx, ev.ModuleID)
		return nil
	})

	return s
}

// OnEvent registers an observer for cascade events, run after the session's own handlers
func (s *Session) OnEvent(t EventType, h EventHandler) {
	s.events.Subscribe(t, h)
}

// ModuleID returns the active module ID
func (s *Session) ModuleID() string { return s.moduleID }

// UnitID returns the active unit ID
func (s *Session) UnitID() string { return s.unitID }

// Units returns a copy of the cached, sorted unit list of the active module
func (s *Session) Units() []models.Unit { return slices.Clone(s.units) }

// ModuleProgress returns the cached module progress of the active module or nil
func (s *Session) ModuleProgress() *models.ModuleProgress {
	if s.moduleProgress == nil || s.moduleProgress.ModuleID != s.moduleID {
		return nil
	}
	mp := *s.moduleProgress
	return &mp
}

// UnitProgress returns the cached unit progress of the active unit or nil
func (s *Session) UnitProgress() *models.UnitProgress {
	if s.unitProgress == nil || s.unitProgress.UnitID != s.unitID {
		return nil
	}
	up := *s.unitProgress
	return &up
}

// ModuleStatus returns the lowercase status of the active module derived from the cached record
func (s *Session) ModuleStatus() string {
	if mp := s.ModuleProgress(); mp != nil {
		return mp.Status.Lower()
	}
	return models.ProgressStatusNotStarted.Lower()
}

// UnitStatus returns the lowercase status of the active unit derived from the cached record
func (s *Session) UnitStatus() string {
	if up := s.UnitProgress(); up != nil {
		return up.Status.Lower()
	}
	return models.ProgressStatusNotStarted.Lower()
}

// QuizModal returns the session's quiz modal
func (s *Session) QuizModal() *QuizModal { return s.quizModal }

// CompletionModal returns the session's unit completion modal
func (s *Session) CompletionModal() *UnitCompletionModal { return s.completionModal }

// UnitContent returns the session's unit content cache
func (s *Session) UnitContent() *UnitContent { return s.unitContent }

// Outcome collects what the session changed in the view layer
func (s *Session) Outcome(nav *Navigation) Outcome {
	out := Outcome{
		Navigation:          nav,
		QuizModal:           s.quizModal.State(),
		UnitCompletionModal: s.completionModal.State(),
		ModuleID:            s.moduleID,
		UnitID:              s.unitID,
		ModuleStatus:        s.ModuleStatus(),
		UnitStatus:          s.UnitStatus(),
	}
	if mp := s.ModuleProgress(); mp != nil {
		out.EarnedPoints = mp.EarnedPoints
	}
	return out
}

// GetOrCreateModuleProgress returns the learner's progress for "moduleID" (the active module
// when empty), creating it on first access. Only a not-found lookup triggers creation.
// The result is a copy; the session keeps its own.
func (s *Session) GetOrCreateModuleProgress(ctx context.Context, moduleID string) (*models.ModuleProgress, error) {
	if moduleID == "" {
		moduleID = s.moduleID
	}
	if moduleID == "" {
		return nil, ErrNoActiveModule
	}
	if s.moduleProgress != nil && s.moduleProgress.ModuleID == moduleID {
		cached := *s.moduleProgress
		return &cached, nil
	}

	mp, err := s.store.GetModuleProgress(ctx, moduleID)
	if err != nil {
		if !models.IsNotFound(err) {
			return nil, fmt.Errorf("failed to get module progress: %w", err)
		}

		req := models.CreateModuleProgressRequest{ModuleID: moduleID}
		if moduleID == s.moduleID {
			req.LastVisitedUnit = s.unitID
		}
		mp, err = s.store.CreateModuleProgress(ctx, req)
		if models.IsConflict(err) {
			mp, err = s.store.GetModuleProgress(ctx, moduleID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create module progress: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cached := *mp
	s.moduleProgress = &cached
	return mp, nil
}

// GetOrCreateUnitProgress returns the learner's progress for "unitID" (the active unit
// when empty), creating it under the active module on first access. The result is a copy.
func (s *Session) GetOrCreateUnitProgress(ctx context.Context, unitID string) (*models.UnitProgress, error) {
	if unitID == "" {
		unitID = s.unitID
	}
	if unitID == "" {
		return nil, ErrNoActiveUnit
	}
	return s.getOrCreateUnitProgress(ctx, unitID, s.moduleID)
}

func (s *Session) getOrCreateUnitProgress(ctx context.Context, unitID, moduleID string) (*models.UnitProgress, error) {
	if s.unitProgress != nil && s.unitProgress.UnitID == unitID {
		cached := *s.unitProgress
		return &cached, nil
	}

	up, err := s.store.GetUnitProgress(ctx, unitID)
	if err != nil {
		if !models.IsNotFound(err) {
			return nil, fmt.Errorf("failed to get unit progress: %w", err)
		}
		if moduleID == "" {
			return nil, ErrNoActiveModule
		}

		up, err = s.store.CreateUnitProgress(ctx, models.CreateUnitProgressRequest{UnitID: unitID, ModuleID: moduleID})
		if models.IsConflict(err) {
			up, err = s.store.GetUnitProgress(ctx, unitID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create unit progress: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cached := *up
	s.unitProgress = &cached
	return up, nil
}

func (s *Session) getOrCreateContentProgress(ctx context.Context, unitID, contentID string) (*models.ContentProgress, error) {
	cp, err := s.store.GetContentProgress(ctx, contentID)
	if err == nil {
		return cp, nil
	}
	if !models.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get content progress: %w", err)
	}

	cp, err = s.store.CreateContentProgress(ctx, models.CreateContentProgressRequest{
		UnitID:        unitID,
		UnitContentID: contentID,
		Status:        models.ProgressStatusInProgress,
	})
	if models.IsConflict(err) {
		cp, err = s.store.GetContentProgress(ctx, contentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create content progress: %w", err)
	}
	return cp, nil
}

// EnsureModuleStarted makes sure the active module has progress with status at least IN_PROGRESS.
// Failures are logged.
func (s *Session) EnsureModuleStarted(ctx context.Context) {
	mp, err := s.GetOrCreateModuleProgress(ctx, "")
	if err != nil {
		s.logger.Warn("failed to ensure module started", zap.String("module_id", s.moduleID), zap.Error(err))
		return
	}
	if mp.Status.IsStarted() {
		return
	}

	status := models.ProgressStatusInProgress
	updated, err := s.store.PatchModuleProgress(ctx, mp.ID, models.PatchModuleProgressRequest{Status: &status})
	if err != nil {
		s.logger.Warn("failed to mark module in progress", zap.String("module_id", s.moduleID), zap.Error(err))
		return
	}
	if ctx.Err() == nil {
		s.moduleProgress = updated
	}
}

// EnsureUnitStarted makes sure "unitID" has progress with status at least IN_PROGRESS.
// Failures are logged.
func (s *Session) EnsureUnitStarted(ctx context.Context, unitID string) {
	up, err := s.GetOrCreateUnitProgress(ctx, unitID)
	if err != nil {
		s.logger.Warn("failed to ensure unit started", zap.String("unit_id", unitID), zap.Error(err))
		return
	}
	if up.Status.IsStarted() {
		return
	}

	updated, err := s.store.UpdateUnitProgress(ctx, up.ID, models.UpdateUnitProgressRequest{
		ModuleID: up.ModuleID,
		UnitID:   up.UnitID,
		Status:   models.ProgressStatusInProgress,
	})
	if err != nil {
		s.logger.Warn("failed to mark unit in progress", zap.String("unit_id", unitID), zap.Error(err))
		return
	}
	if ctx.Err() == nil {
		s.unitProgress = updated
	}
}
