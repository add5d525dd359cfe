package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRecordProvider is a mock implementation of RecordProvider
type mockRecordProvider struct {
	catalog progress.ContentCatalog
	store   progress.ProgressStore
	userIDs []int
}

func (m *mockRecordProvider) Store(ctx context.Context, userID int) progress.ProgressStore {
	m.userIDs = append(m.userIDs, userID)
	return m.store
}

func (m *mockRecordProvider) Catalog(ctx context.Context) progress.ContentCatalog {
	return m.catalog
}

// mockModuleReader is a mock implementation of ModuleReader
type mockModuleReader struct {
	modules map[string]*models.Module
}

func (m *mockModuleReader) GetModule(ctx context.Context, moduleID string) (*models.Module, error) {
	if module, ok := m.modules[moduleID]; ok {
		return module, nil
	}
	return nil, models.NewNotFoundError("module not found")
}

func newRecordRouter(provider *mockRecordProvider, modules ModuleReader) http.Handler {
	r := chi.NewRouter()
	NewRecordHandler(provider, modules, zap.NewNop()).RegisterRoutes(r, withUser(7))
	return r
}

func TestRecordHandler_Catalog(t *testing.T) {
	provider := &mockRecordProvider{catalog: newCourse(), store: newMemStore()}
	router := newRecordRouter(provider, &mockModuleReader{modules: map[string]*models.Module{
		"m1": {ID: "m1", Title: "Go basics", UnitIDs: []string{"u1", "u2"}},
	}})

	t.Run("get module", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/catalog/modules/m1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var module models.Module
		decodeBody(t, w, &module)
		assert.Equal(t, []string{"u1", "u2"}, module.UnitIDs)
	})

	t.Run("missing module", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/catalog/modules/m9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list units", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/catalog/modules/m1/units", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var units []models.Unit
		decodeBody(t, w, &units)
		assert.Len(t, units, 2)
	})

	t.Run("empty unit lists as empty array", func(t *testing.T) {
		w := doRequest(t, router, http.MethodGet, "/catalog/units/u9/contents", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

func TestRecordHandler_ModuleLookupDisabled(t *testing.T) {
	router := newRecordRouter(&mockRecordProvider{catalog: newCourse(), store: newMemStore()}, nil)

	w := doRequest(t, router, http.MethodGet, "/catalog/modules/m1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordHandler_ModuleProgress(t *testing.T) {
	store := newMemStore()
	provider := &mockRecordProvider{catalog: newCourse(), store: store}
	router := newRecordRouter(provider, nil)

	w := doRequest(t, router, http.MethodGet, "/module-progress/m1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPost, "/module-progress", models.CreateModuleProgressRequest{ModuleID: "m1", LastVisitedUnit: "u1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.ModuleProgress
	decodeBody(t, w, &created)
	assert.Equal(t, models.ProgressStatusInProgress, created.Status)
	assert.Equal(t, "u1", created.LastVisitedUnitID)

	w = doRequest(t, router, http.MethodPost, "/module-progress", models.CreateModuleProgressRequest{ModuleID: "m1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	points := 20
	w = doRequest(t, router, http.MethodPatch, "/module-progress/"+created.ID, models.PatchModuleProgressRequest{EarnedPoints: &points})
	require.Equal(t, http.StatusOK, w.Code)
	var patched models.ModuleProgress
	decodeBody(t, w, &patched)
	assert.Equal(t, 20, patched.EarnedPoints)

	w = doRequest(t, router, http.MethodGet, "/module-progress/m1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []int{7, 7, 7, 7, 7}, provider.userIDs)
}

func TestRecordHandler_Validation(t *testing.T) {
	badStatus := models.ProgressStatus("DONE")
	notStarted := models.ProgressStatusNotStarted
	negative := -1

	tests := []struct {
		name   string
		method string
		target string
		body   any
	}{
		{name: "module progress without module", method: http.MethodPost, target: "/module-progress", body: models.CreateModuleProgressRequest{}},
		{name: "module progress unknown status", method: http.MethodPatch, target: "/module-progress/p1", body: models.PatchModuleProgressRequest{Status: &badStatus}},
		{name: "module progress negative points", method: http.MethodPatch, target: "/module-progress/p1", body: models.PatchModuleProgressRequest{EarnedPoints: &negative}},
		{name: "unit progress without module", method: http.MethodPost, target: "/unit-progress", body: models.CreateUnitProgressRequest{UnitID: "u1"}},
		{name: "unit progress stored as not started", method: http.MethodPut, target: "/unit-progress/p1", body: models.UpdateUnitProgressRequest{Status: notStarted}},
		{name: "unit progress list without module", method: http.MethodGet, target: "/unit-progress"},
		{name: "content progress without content", method: http.MethodPost, target: "/content-progress", body: models.CreateContentProgressRequest{UnitID: "u1"}},
		{name: "content progress negative points", method: http.MethodPatch, target: "/content-progress/p1", body: models.UpdateContentProgressRequest{Points: &negative}},
		{name: "content progress list without unit", method: http.MethodGet, target: "/content-progress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRecordRouter(&mockRecordProvider{catalog: newCourse(), store: newMemStore()}, nil)

			w := doRequest(t, router, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRecordHandler_UnitAndContentProgress(t *testing.T) {
	store := newMemStore()
	router := newRecordRouter(&mockRecordProvider{catalog: newCourse(), store: store}, nil)

	w := doRequest(t, router, http.MethodPost, "/unit-progress", models.CreateUnitProgressRequest{UnitID: "u1", ModuleID: "m1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var unit models.UnitProgress
	decodeBody(t, w, &unit)

	w = doRequest(t, router, http.MethodPut, "/unit-progress/"+unit.ID, models.UpdateUnitProgressRequest{UnitID: "u1", ModuleID: "m1", Status: models.ProgressStatusCompleted})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/unit-progress?moduleId=m1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var units []models.UnitProgress
	decodeBody(t, w, &units)
	require.Len(t, units, 1)
	assert.Equal(t, models.ProgressStatusCompleted, units[0].Status)

	w = doRequest(t, router, http.MethodPost, "/content-progress", models.CreateContentProgressRequest{UnitID: "u1", UnitContentID: "c1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var content models.ContentProgress
	decodeBody(t, w, &content)
	assert.Equal(t, models.ProgressStatusInProgress, content.Status)

	completed := models.ProgressStatusCompleted
	w = doRequest(t, router, http.MethodPatch, "/content-progress/"+content.ID, models.UpdateContentProgressRequest{Status: &completed})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPatch, "/content-progress/"+content.ID, models.UpdateContentProgressRequest{Status: &completed})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, router, http.MethodGet, "/content-progress/c1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/content-progress?unitId=u2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
