package progress

import (
	"context"
	"fmt"
	"sync"

	"github.com/learnpath/backend/internal/models"
)

// fakeCatalog is an in-memory ContentCatalog
type fakeCatalog struct {
	mu              sync.Mutex
	units           map[string][]models.Unit
	contents        map[string][]models.ContentItem
	listUnitsErr    error
	listContentErr  error
	listUnitsCalls  int
	listContentCall int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		units:    make(map[string][]models.Unit),
		contents: make(map[string][]models.ContentItem),
	}
}

func (c *fakeCatalog) ListUnits(ctx context.Context, moduleID string) ([]models.Unit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listUnitsCalls++
	if c.listUnitsErr != nil {
		return nil, c.listUnitsErr
	}
	return append([]models.Unit(nil), c.units[moduleID]...), nil
}

func (c *fakeCatalog) ListContent(ctx context.Context, unitID string) ([]models.ContentItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listContentCall++
	if c.listContentErr != nil {
		return nil, c.listContentErr
	}
	return append([]models.ContentItem(nil), c.contents[unitID]...), nil
}

// fakeStore is an in-memory ProgressStore for a single learner
type fakeStore struct {
	mu      sync.Mutex
	seq     int
	modules map[string]*models.ModuleProgress
	units   map[string]*models.UnitProgress
	content map[string]*models.ContentProgress

	getModuleErr      error
	getUnitErr        error
	getContentErr     error
	createUnitErr     error
	createContentErr  error
	patchModuleErr    error
	listByUnitErr     error
	listByModuleErr   error
	raceUnit          *models.UnitProgress
	createModuleCalls int
	createUnitCalls   int
	createContentCall int
	patchModuleCalls  int
	updateUnitCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		modules: make(map[string]*models.ModuleProgress),
		units:   make(map[string]*models.UnitProgress),
		content: make(map[string]*models.ContentProgress),
	}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeStore) GetModuleProgress(ctx context.Context, moduleID string) (*models.ModuleProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getModuleErr != nil {
		return nil, s.getModuleErr
	}
	mp, ok := s.modules[moduleID]
	if !ok {
		return nil, models.NewNotFoundError("module progress not found")
	}
	cp := *mp
	return &cp, nil
}

func (s *fakeStore) CreateModuleProgress(ctx context.Context, req models.CreateModuleProgressRequest) (*models.ModuleProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createModuleCalls++
	if _, ok := s.modules[req.ModuleID]; ok {
		return nil, models.NewConflictError("module progress already exists")
	}
	mp := &models.ModuleProgress{
		ID:                   s.nextID("mp"),
		ModuleID:             req.ModuleID,
		Status:               models.ProgressStatusInProgress,
		LastVisitedUnitID:    req.LastVisitedUnit,
		LastVisitedContentID: req.LastVisitedContent,
	}
	s.modules[req.ModuleID] = mp
	cp := *mp
	return &cp, nil
}

func (s *fakeStore) PatchModuleProgress(ctx context.Context, progressID string, req models.PatchModuleProgressRequest) (*models.ModuleProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patchModuleCalls++
	if s.patchModuleErr != nil {
		return nil, s.patchModuleErr
	}
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

func (s *fakeStore) GetUnitProgress(ctx context.Context, unitID string) (*models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getUnitErr != nil {
		return nil, s.getUnitErr
	}
	up, ok := s.units[unitID]
	if !ok {
		return nil, models.NewNotFoundError("unit progress not found")
	}
	cp := *up
	return &cp, nil
}

func (s *fakeStore) CreateUnitProgress(ctx context.Context, req models.CreateUnitProgressRequest) (*models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createUnitCalls++
	if s.createUnitErr != nil {
		return nil, s.createUnitErr
	}
	if s.raceUnit != nil {
		// another request created the record first
		s.units[req.UnitID] = s.raceUnit
		return nil, models.NewConflictError("unit progress already exists")
	}
	if _, ok := s.units[req.UnitID]; ok {
		return nil, models.NewConflictError("unit progress already exists")
	}
	up := &models.UnitProgress{
		ID:       s.nextID("up"),
		UnitID:   req.UnitID,
		ModuleID: req.ModuleID,
		Status:   models.ProgressStatusInProgress,
	}
	s.units[req.UnitID] = up
	cp := *up
	return &cp, nil
}

func (s *fakeStore) UpdateUnitProgress(ctx context.Context, progressID string, req models.UpdateUnitProgressRequest) (*models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateUnitCalls++
	for _, up := range s.units {
		if up.ID == progressID {
			up.Status = req.Status
			cp := *up
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("unit progress not found")
}

func (s *fakeStore) GetContentProgress(ctx context.Context, contentID string) (*models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getContentErr != nil {
		return nil, s.getContentErr
	}
	cp, ok := s.content[contentID]
	if !ok {
		return nil, models.NewNotFoundError("content progress not found")
	}
	c := *cp
	return &c, nil
}

func (s *fakeStore) CreateContentProgress(ctx context.Context, req models.CreateContentProgressRequest) (*models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createContentCall++
	if s.createContentErr != nil {
		return nil, s.createContentErr
	}
	if _, ok := s.content[req.UnitContentID]; ok {
		return nil, models.NewConflictError("content progress already exists")
	}
	cp := &models.ContentProgress{
		ID:            s.nextID("cp"),
		UnitID:        req.UnitID,
		UnitContentID: req.UnitContentID,
		Status:        req.Status,
		Points:        req.Points,
	}
	s.content[req.UnitContentID] = cp
	c := *cp
	return &c, nil
}

func (s *fakeStore) UpdateContentProgress(ctx context.Context, progressID string, req models.UpdateContentProgressRequest) (*models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cp := range s.content {
		if cp.ID != progressID {
			continue
		}
		if req.Status != nil {
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

func (s *fakeStore) ListContentProgressByUnit(ctx context.Context, unitID string) ([]models.ContentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listByUnitErr != nil {
		return nil, s.listByUnitErr
	}
	var rows []models.ContentProgress
	for _, cp := range s.content {
		if cp.UnitID == unitID {
			rows = append(rows, *cp)
		}
	}
	return rows, nil
}

func (s *fakeStore) ListUnitProgressByModule(ctx context.Context, moduleID string) ([]models.UnitProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listByModuleErr != nil {
		return nil, s.listByModuleErr
	}
	var rows []models.UnitProgress
	for _, up := range s.units {
		if up.ModuleID == moduleID {
			rows = append(rows, *up)
		}
	}
	return rows, nil
}

// setContentStatus seeds a content progress row
func (s *fakeStore) setContentStatus(unitID, contentID string, status models.ProgressStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content[contentID] = &models.ContentProgress{
		ID:            s.nextID("cp"),
		UnitID:        unitID,
		UnitContentID: contentID,
		Status:        status,
	}
}

// accumulatingStore is a fakeStore that credits points in place
type accumulatingStore struct {
	*fakeStore
	addCalls int
}

func (s *accumulatingStore) AddEarnedPoints(ctx context.Context, progressID string, points int) (*models.ModuleProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCalls++
	for _, mp := range s.modules {
		if mp.ID == progressID {
			mp.EarnedPoints += points
			cp := *mp
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("module progress not found")
}

// fakeReconciler records scheduled finalizations
type fakeReconciler struct {
	units   []string
	modules []string
}

func (r *fakeReconciler) ScheduleUnitFinalization(ctx context.Context, unitID, moduleID string) error {
	r.units = append(r.units, unitID)
	return nil
}

func (r *fakeReconciler) ScheduleModuleFinalization(ctx context.Context, moduleID string) error {
	r.modules = append(r.modules, moduleID)
	return nil
}
