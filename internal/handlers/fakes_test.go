package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	authMiddleware "github.com/learnpath/backend/internal/auth/middleware"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"github.com/stretchr/testify/require"
)

// memCatalog is an in-memory implementation of progress.ContentCatalog
type memCatalog struct {
	units    map[string][]models.Unit
	contents map[string][]models.ContentItem
	err      error
}

func (c *memCatalog) ListUnits(ctx context.Context, moduleID string) ([]models.Unit, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.units[moduleID], nil
}

func (c *memCatalog) ListContent(ctx context.Context, unitID string) ([]models.ContentItem, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.contents[unitID], nil
}

// newCourse returns a catalog with module "m1": unit "u1" holds article "c1" and quiz "c2" worth 10 points,
// unit "u2" holds video "c3" worth 5 points. Units and items are listed out of order.
func newCourse() *memCatalog {
	return &memCatalog{
		units: map[string][]models.Unit{
			"m1": {
				{ID: "u2", ModuleID: "m1", Title: "Practice", SortOrder: 2},
				{ID: "u1", ModuleID: "m1", Title: "Basics", SortOrder: 1},
			},
		},
		contents: map[string][]models.ContentItem{
			"u1": {
				{ID: "c2", UnitID: "u1", ContentType: models.ContentTypeQuiz, SortOrder: 2, Points: 10},
				{ID: "c1", UnitID: "u1", ContentType: models.ContentTypeArticle, SortOrder: 1},
			},
			"u2": {
				{ID: "c3", UnitID: "u2", ContentType: models.ContentTypeVideo, SortOrder: 1, Points: 5},
			},
		},
	}
}

// memStore is an in-memory implementation of progress.ProgressStore for one learner
type memStore struct {
	mu       sync.Mutex
	modules  map[string]*models.ModuleProgress
	units    map[string]*models.UnitProgress
	contents map[string]*models.ContentProgress
	err      error
	nextID   int
}

func newMemStore() *memStore {
	return &memStore{
		modules:  make(map[string]*models.ModuleProgress),
		units:    make(map[string]*models.UnitProgress),
		contents: make(map[string]*models.ContentProgress),
	}
}

func (s *memStore) id() string {
	s.nextID++
	return fmt.Sprintf("p%d", s.nextID)
}

func (s *memStore) GetModuleProgress(ctx context.Context, moduleID string) (*models.ModuleProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if mp, ok := s.modules[moduleID]; ok {
		cp := *mp
		return &cp, nil
	}
	return nil, models.NewNotFoundError("module progress not found")
}

func (s *memStore) CreateModuleProgress(ctx context.Context, req models.CreateModuleProgressRequest) (*models.ModuleProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.modules[req.ModuleID]; ok {
		return nil, models.NewConflictError("module progress already exists")
	}
	mp := &models.ModuleProgress{
		ID:                   s.id(),
		ModuleID:             req.ModuleID,
		Status:               models.ProgressStatusInProgress,
		LastVisitedUnitID:    req.LastVisitedUnit,
		LastVisitedContentID: req.LastVisitedContent,
	}
	s.modules[req.ModuleID] = mp
	cp := *mp
	return &cp, nil
}

func (s *memStore) PatchModuleProgress(ctx context.Context, progressID string, req models.PatchModuleProgressRequest) (*models.ModuleProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, mp := range s.modules {
		if mp.ID != progressID {
			continue
		}
		if req.Status != nil {
			mp.Status = *req.Status
		}
		if req.LastVisitedUnitID != nil {
			mp.LastVisitedUnitID = *req.LastVisitedUnitID
		}
		if req.LastVisitedContentID != nil {
			mp.LastVisitedContentID = *req.LastVisitedContentID
		}
		if req.EarnedPoints != nil {
			mp.EarnedPoints = *req.EarnedPoints
		}
		cp := *mp
		return &cp, nil
	}
	return nil, models.NewNotFoundError("module progress not found")
}

func (s *memStore) GetUnitProgress(ctx context.Context, unitID string) (*models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if up, ok := s.units[unitID]; ok {
		cp := *up
		return &cp, nil
	}
	return nil, models.NewNotFoundError("unit progress not found")
}

func (s *memStore) CreateUnitProgress(ctx context.Context, req models.CreateUnitProgressRequest) (*models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.units[req.UnitID]; ok {
		return nil, models.NewConflictError("unit progress already exists")
	}
	up := &models.UnitProgress{ID: s.id(), UnitID: req.UnitID, ModuleID: req.ModuleID, Status: models.ProgressStatusInProgress}
	s.units[req.UnitID] = up
	cp := *up
	return &cp, nil
}

func (s *memStore) UpdateUnitProgress(ctx context.Context, progressID string, req models.UpdateUnitProgressRequest) (*models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, up := range s.units {
		if up.ID == progressID {
			up.Status = req.Status
			cp := *up
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("unit progress not found")
}

func (s *memStore) GetContentProgress(ctx context.Context, contentID string) (*models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cp, ok := s.contents[contentID]; ok {
		c := *cp
		return &c, nil
	}
	return nil, models.NewNotFoundError("content progress not found")
}

func (s *memStore) CreateContentProgress(ctx context.Context, req models.CreateContentProgressRequest) (*models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contents[req.UnitContentID]; ok {
		return nil, models.NewConflictError("content progress already exists")
	}
	cp := &models.ContentProgress{ID: s.id(), UnitID: req.UnitID, UnitContentID: req.UnitContentID, Status: req.Status, Points: req.Points}
	s.contents[req.UnitContentID] = cp
	c := *cp
	return &c, nil
}

func (s *memStore) UpdateContentProgress(ctx context.Context, progressID string, req models.UpdateContentProgressRequest) (*models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cp := range s.contents {
		if cp.ID != progressID {
			continue
		}
		if req.Status != nil {
			if *req.Status == models.ProgressStatusCompleted && cp.Status == models.ProgressStatusCompleted {
				return nil, models.NewConflictError("content already completed")
			}
			cp.Status = *req.Status
		}
		if req.Points != nil {
			cp.Points = *req.Points
		}
		c := *cp
		return &c, nil
	}
	return nil, models.NewNotFoundError("content progress not found")
}

func (s *memStore) ListContentProgressByUnit(ctx context.Context, unitID string) ([]models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []models.ContentProgress
	for _, cp := range s.contents {
		if cp.UnitID == unitID {
			rows = append(rows, *cp)
		}
	}
	return rows, nil
}

func (s *memStore) ListUnitProgressByModule(ctx context.Context, moduleID string) ([]models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []models.UnitProgress
	for _, up := range s.units {
		if up.ModuleID == moduleID {
			rows = append(rows, *up)
		}
	}
	return rows, nil
}

// memBackend is an in-memory implementation of services.Backend serving a single learner
type memBackend struct {
	catalog progress.ContentCatalog
	store   progress.ProgressStore
}

func (b *memBackend) Catalog(ctx context.Context) progress.ContentCatalog { return b.catalog }

func (b *memBackend) Store(ctx context.Context, userID int) progress.ProgressStore { return b.store }

// withUser authenticates every request as "userID"
func withUser(userID int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(authMiddleware.WithUser(r.Context(), userID, "token")))
		})
	}
}

// passthrough leaves requests unauthenticated
func passthrough(next http.Handler) http.Handler { return next }

// doRequest serves a request with an optional JSON body
func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// decodeBody decodes the JSON response body into "out"
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out))
}
