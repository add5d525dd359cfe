package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	authMiddleware "github.com/learnpath/backend/internal/auth/middleware"
	"github.com/learnpath/backend/internal/clients/lmsapi"
	"github.com/learnpath/backend/internal/metrics"
	"github.com/learnpath/backend/internal/middlewares"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"github.com/learnpath/backend/internal/repositories"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend is the interface that wraps access to the records serving one learner request
type Backend interface {
	// Catalog returns the content catalog for the request
	//
	// "ctx" is the context of the request, carrying the learner's access token.
	Catalog(ctx context.Context) progress.ContentCatalog
	// Store returns the progress store of the learner
	//
	// "ctx" is the context of the request, carrying the learner's access token.
	// "userID" is the ID of the authenticated learner.
	Store(ctx context.Context, userID int) progress.ProgressStore
}

type mysqlBackend struct {
	db      *sql.DB
	catalog progress.ContentCatalog
}

// NewMySQLBackend creates a backend reading records from the service's own database.
// "catalog" is usually the cached catalog repository.
func NewMySQLBackend(db *sql.DB, catalog progress.ContentCatalog) *mysqlBackend {
	return &mysqlBackend{
		db:      db,
		catalog: catalog,
	}
}

func (b *mysqlBackend) Catalog(ctx context.Context) progress.ContentCatalog {
	return b.catalog
}

func (b *mysqlBackend) Store(ctx context.Context, userID int) progress.ProgressStore {
	return repositories.NewProgressRepository(b.db, userID)
}

type httpBackend struct {
	client   *lmsapi.Client
	decorate func(progress.ContentCatalog) progress.ContentCatalog
}

// NewHTTPBackend creates a backend forwarding the learner's token to a remote LMS API.
// "decorate" wraps the catalog (for example with a cache) and may be nil.
func NewHTTPBackend(client *lmsapi.Client, decorate func(progress.ContentCatalog) progress.ContentCatalog) *httpBackend {
	return &httpBackend{
		client:   client,
		decorate: decorate,
	}
}

func (b *httpBackend) Catalog(ctx context.Context) progress.ContentCatalog {
	var catalog progress.ContentCatalog = b.client.WithToken(authMiddleware.GetAccessToken(ctx))
	if b.decorate != nil {
		catalog = b.decorate(catalog)
	}
	return catalog
}

func (b *httpBackend) Store(ctx context.Context, userID int) progress.ProgressStore {
	return b.client.WithToken(authMiddleware.GetAccessToken(ctx))
}

// ReconcilerFactory returns the reconciler of one learner
type ReconcilerFactory func(userID int) progress.Reconciler

// LearnerSession is a progress session together with the recorder of its navigation
type LearnerSession struct {
	*progress.Session
	Recorder *progress.Recorder
}

// Outcome returns what the session changed in the view layer
func (l *LearnerSession) Outcome() progress.Outcome {
	return l.Session.Outcome(l.Recorder.Last())
}

// SessionService builds progress sessions for authenticated learners
type SessionService struct {
	backend     Backend
	reconcilers ReconcilerFactory
	logger      *zap.Logger
}

// NewSessionService creates a new session service.
// "reconcilers" may be nil, then failed inline finalizations are only logged.
func NewSessionService(backend Backend, reconcilers ReconcilerFactory, logger *zap.Logger) *SessionService {
	return &SessionService{
		backend:     backend,
		reconcilers: reconcilers,
		logger:      logger,
	}
}

// NewSession creates a session of "userID" scoped to "moduleID" and "unitID"
func (s *SessionService) NewSession(ctx context.Context, userID int, moduleID, unitID string) *LearnerSession {
	logger := s.logger.With(
		zap.Int("user_id", userID),
		zap.String("request_id", middlewares.GetRequestID(ctx)),
	)
	recorder := progress.NewRecorder()

	deps := progress.Dependencies{
		Catalog: s.backend.Catalog(ctx),
		Store:   s.backend.Store(ctx, userID),
		Router:  recorder,
		Logger:  logger,
	}
	if s.reconcilers != nil {
		deps.Reconciler = s.reconcilers(userID)
	}

	session := progress.NewSession(deps, moduleID, unitID)
	metrics.Observe(session)
	session.OnEvent(progress.EventModuleCompleted, func(ctx context.Context, ev progress.Event) error {
		logger.Info("module completed",
			zap.String("module_id", ev.ModuleID),
			zap.Int("earned_points", ev.Points),
		)
		return nil
	})

	return &LearnerSession{Session: session, Recorder: recorder}
}

// Store returns the progress store of "userID" for record level access
func (s *SessionService) Store(ctx context.Context, userID int) progress.ProgressStore {
	return s.backend.Store(ctx, userID)
}

// Catalog returns the content catalog for record level access
func (s *SessionService) Catalog(ctx context.Context) progress.ContentCatalog {
	return s.backend.Catalog(ctx)
}

// GetModuleSummary reports the learner's progress through a module without creating records.
// Units and modules without records are reported as NOT_STARTED.
func (s *SessionService) GetModuleSummary(ctx context.Context, userID int, moduleID string) (*models.ModuleProgressSummary, error) {
	store := s.backend.Store(ctx, userID)
	catalog := s.backend.Catalog(ctx)

	var mp *models.ModuleProgress
	var units []models.Unit
	var rows []models.UnitProgress

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mp, err = store.GetModuleProgress(gctx, moduleID)
		if models.IsNotFound(err) {
			mp, err = nil, nil
		}
		if err != nil {
			return fmt.Errorf("failed to get module progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		units, err = catalog.ListUnits(gctx, moduleID)
		if err != nil {
			return fmt.Errorf("failed to list units: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = store.ListUnitProgressByModule(gctx, moduleID)
		if err != nil {
			return fmt.Errorf("failed to list unit progress: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &models.ModuleProgressSummary{
		ModuleID: moduleID,
		Status:   models.ProgressStatusNotStarted,
		Units:    make([]models.UnitProgressSummary, 0, len(units)),
	}
	if mp != nil {
		summary.Status = mp.Status
		summary.EarnedPoints = mp.EarnedPoints
		summary.LastVisitedUnitID = mp.LastVisitedUnitID
		summary.LastVisitedContentID = mp.LastVisitedContentID
	}

	statuses := make(map[string]models.ProgressStatus, len(rows))
	for _, row := range rows {
		statuses[row.UnitID] = row.Status
	}

	sort.SliceStable(units, func(i, j int) bool { return units[i].SortOrder < units[j].SortOrder })
	for _, u := range units {
		status, ok := statuses[u.ID]
		if !ok {
			status = models.ProgressStatusNotStarted
		}
		summary.Units = append(summary.Units, models.UnitProgressSummary{UnitID: u.ID, Title: u.Title, Status: status})
	}

	return summary, nil
}
