package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"go.uber.org/zap"
)

// RecordProvider is the interface that wraps record level access to progress and the catalog
type RecordProvider interface {
	// Store returns the progress store of "userID"
	Store(ctx context.Context, userID int) progress.ProgressStore
	// Catalog returns the content catalog
	Catalog(ctx context.Context) progress.ContentCatalog
}

// ModuleReader is the interface that wraps module lookup
type ModuleReader interface {
	// GetModule retrieves a module with the IDs of its units
	//
	// Returns the module and an error if any, a not found error when it does not exist.
	GetModule(ctx context.Context, moduleID string) (*models.Module, error)
}

// RecordHandler serves the progress records and the catalog over REST.
// The routes mirror the ones consumed by the remote LMS client so this service can act as that backend.
type RecordHandler struct {
	BaseHandler
	records RecordProvider
	modules ModuleReader
}

// NewRecordHandler creates a new record handler.
// "modules" may be nil, then module lookup is not served.
func NewRecordHandler(records RecordProvider, modules ModuleReader, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		records:     records,
		modules:     modules,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all record routes
func (h *RecordHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Route("/catalog", func(r chi.Router) {
			if h.modules != nil {
				r.Get("/modules/{moduleId}", h.GetModule)
			}
			r.Get("/modules/{moduleId}/units", h.ListUnits)
			r.Get("/units/{unitId}/contents", h.ListContent)
		})

		// "{id}" is the catalog ID on GET and the progress record ID on writes
		r.Route("/module-progress", func(r chi.Router) {
			r.Post("/", h.CreateModuleProgress)
			r.Get("/{id}", h.GetModuleProgress)
			r.Patch("/{id}", h.PatchModuleProgress)
		})
		r.Route("/unit-progress", func(r chi.Router) {
			r.Get("/", h.ListUnitProgress)
			r.Post("/", h.CreateUnitProgress)
			r.Get("/{id}", h.GetUnitProgress)
			r.Put("/{id}", h.UpdateUnitProgress)
		})
		r.Route("/content-progress", func(r chi.Router) {
			r.Get("/", h.ListContentProgress)
			r.Post("/", h.CreateContentProgress)
			r.Get("/{id}", h.GetContentProgress)
			r.Patch("/{id}", h.UpdateContentProgress)
		})
	})
}

func validStoredStatus(s models.ProgressStatus) bool {
	return s == models.ProgressStatusInProgress || s == models.ProgressStatusCompleted
}

// GetModule handles GET /catalog/modules/{moduleId}
// @Summary Get a module
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 200 {object} models.Module
// @Failure 404 {object} map[string]string "Module not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /catalog/modules/{moduleId} [get]
func (h *RecordHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.modules.GetModule(r.Context(), chi.URLParam(r, "moduleId"))
	if err != nil {
		h.respondFailure(w, err, "failed to get module")
		return
	}
	h.respondJSON(w, http.StatusOK, module)
}

// ListUnits handles GET /catalog/modules/{moduleId}/units
// @Summary List the units of a module
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 200 {array} models.Unit
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /catalog/modules/{moduleId}/units [get]
func (h *RecordHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.records.Catalog(r.Context()).ListUnits(r.Context(), chi.URLParam(r, "moduleId"))
	if err != nil {
		h.respondFailure(w, err, "failed to list units")
		return
	}
	if units == nil {
		units = []models.Unit{}
	}
	h.respondJSON(w, http.StatusOK, units)
}

// ListContent handles GET /catalog/units/{unitId}/contents
// @Summary List the content items of a unit
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param unitId path string true "Unit ID"
// @Success 200 {array} models.ContentItem
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /catalog/units/{unitId}/contents [get]
func (h *RecordHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	items, err := h.records.Catalog(r.Context()).ListContent(r.Context(), chi.URLParam(r, "unitId"))
	if err != nil {
		h.respondFailure(w, err, "failed to list content")
		return
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	h.respondJSON(w, http.StatusOK, items)
}

// GetModuleProgress handles GET /module-progress/{id}
// @Summary Get module progress by module ID
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} models.ModuleProgress
// @Failure 404 {object} map[string]string "No progress for module"
// @Router /module-progress/{id} [get]
func (h *RecordHandler) GetModuleProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	mp, err := h.records.Store(r.Context(), userID).GetModuleProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondFailure(w, err, "failed to get module progress")
		return
	}
	h.respondJSON(w, http.StatusOK, mp)
}

// CreateModuleProgress handles POST /module-progress
// @Summary Create module progress
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateModuleProgressRequest true "Module progress"
// @Success 201 {object} models.ModuleProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 409 {object} map[string]string "Progress already exists"
// @Router /module-progress [post]
func (h *RecordHandler) CreateModuleProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.CreateModuleProgressRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ModuleID == "" {
		h.respondError(w, http.StatusBadRequest, "moduleId is required")
		return
	}

	mp, err := h.records.Store(r.Context(), userID).CreateModuleProgress(r.Context(), req)
	if err != nil {
		h.respondFailure(w, err, "failed to create module progress")
		return
	}
	h.respondJSON(w, http.StatusCreated, mp)
}

// PatchModuleProgress handles PATCH /module-progress/{id}
// @Summary Partially update module progress
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress record ID"
// @Param request body models.PatchModuleProgressRequest true "Fields to change"
// @Success 200 {object} models.ModuleProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Progress not found"
// @Router /module-progress/{id} [patch]
func (h *RecordHandler) PatchModuleProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.PatchModuleProgressRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != nil && !validStoredStatus(*req.Status) {
		h.respondError(w, http.StatusBadRequest, "invalid status")
		return
	}
	if req.EarnedPoints != nil && *req.EarnedPoints < 0 {
		h.respondError(w, http.StatusBadRequest, "earnedPoints must not be negative")
		return
	}

	mp, err := h.records.Store(r.Context(), userID).PatchModuleProgress(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondFailure(w, err, "failed to update module progress")
		return
	}
	h.respondJSON(w, http.StatusOK, mp)
}

// GetUnitProgress handles GET /unit-progress/{id}
// @Summary Get unit progress by unit ID
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Unit ID"
// @Success 200 {object} models.UnitProgress
// @Failure 404 {object} map[string]string "No progress for unit"
// @Router /unit-progress/{id} [get]
func (h *RecordHandler) GetUnitProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	up, err := h.records.Store(r.Context(), userID).GetUnitProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondFailure(w, err, "failed to get unit progress")
		return
	}
	h.respondJSON(w, http.StatusOK, up)
}

// ListUnitProgress handles GET /unit-progress?moduleId=
// @Summary List unit progress of a module
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param moduleId query string true "Module ID"
// @Success 200 {array} models.UnitProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Router /unit-progress [get]
func (h *RecordHandler) ListUnitProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	moduleID := r.URL.Query().Get("moduleId")
	if moduleID == "" {
		h.respondError(w, http.StatusBadRequest, "moduleId is required")
		return
	}

	rows, err := h.records.Store(r.Context(), userID).ListUnitProgressByModule(r.Context(), moduleID)
	if err != nil {
		h.respondFailure(w, err, "failed to list unit progress")
		return
	}
	if rows == nil {
		rows = []models.UnitProgress{}
	}
	h.respondJSON(w, http.StatusOK, rows)
}

// CreateUnitProgress handles POST /unit-progress
// @Summary Create unit progress
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateUnitProgressRequest true "Unit progress"
// @Success 201 {object} models.UnitProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 409 {object} map[string]string "Progress already exists"
// @Router /unit-progress [post]
func (h *RecordHandler) CreateUnitProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.CreateUnitProgressRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UnitID == "" || req.ModuleID == "" {
		h.respondError(w, http.StatusBadRequest, "unitId and moduleId are required")
		return
	}

	up, err := h.records.Store(r.Context(), userID).CreateUnitProgress(r.Context(), req)
	if err != nil {
		h.respondFailure(w, err, "failed to create unit progress")
		return
	}
	h.respondJSON(w, http.StatusCreated, up)
}

// UpdateUnitProgress handles PUT /unit-progress/{id}
// @Summary Replace unit progress
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress record ID"
// @Param request body models.UpdateUnitProgressRequest true "Unit progress"
// @Success 200 {object} models.UnitProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Progress not found"
// @Router /unit-progress/{id} [put]
func (h *RecordHandler) UpdateUnitProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.UpdateUnitProgressRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !validStoredStatus(req.Status) {
		h.respondError(w, http.StatusBadRequest, "invalid status")
		return
	}

	up, err := h.records.Store(r.Context(), userID).UpdateUnitProgress(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondFailure(w, err, "failed to update unit progress")
		return
	}
	h.respondJSON(w, http.StatusOK, up)
}

// GetContentProgress handles GET /content-progress/{id}
// @Summary Get content progress by content ID
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Content ID"
// @Success 200 {object} models.ContentProgress
// @Failure 404 {object} map[string]string "No progress for content"
// @Router /content-progress/{id} [get]
func (h *RecordHandler) GetContentProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	cp, err := h.records.Store(r.Context(), userID).GetContentProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondFailure(w, err, "failed to get content progress")
		return
	}
	h.respondJSON(w, http.StatusOK, cp)
}

// ListContentProgress handles GET /content-progress?unitId=
// @Summary List content progress of a unit
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param unitId query string true "Unit ID"
// @Success 200 {array} models.ContentProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Router /content-progress [get]
func (h *RecordHandler) ListContentProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	unitID := r.URL.Query().Get("unitId")
	if unitID == "" {
		h.respondError(w, http.StatusBadRequest, "unitId is required")
		return
	}

	rows, err := h.records.Store(r.Context(), userID).ListContentProgressByUnit(r.Context(), unitID)
	if err != nil {
		h.respondFailure(w, err, "failed to list content progress")
		return
	}
	if rows == nil {
		rows = []models.ContentProgress{}
	}
	h.respondJSON(w, http.StatusOK, rows)
}

// CreateContentProgress handles POST /content-progress
// @Summary Create content progress
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateContentProgressRequest true "Content progress"
// @Success 201 {object} models.ContentProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 409 {object} map[string]string "Progress already exists"
// @Router /content-progress [post]
func (h *RecordHandler) CreateContentProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.CreateContentProgressRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UnitID == "" || req.UnitContentID == "" {
		h.respondError(w, http.StatusBadRequest, "unitId and unitContentId are required")
		return
	}
	if req.Status == "" {
		req.Status = models.ProgressStatusInProgress
	}
	if !validStoredStatus(req.Status) || req.Points < 0 {
		h.respondError(w, http.StatusBadRequest, "invalid status or points")
		return
	}

	cp, err := h.records.Store(r.Context(), userID).CreateContentProgress(r.Context(), req)
	if err != nil {
		h.respondFailure(w, err, "failed to create content progress")
		return
	}
	h.respondJSON(w, http.StatusCreated, cp)
}

// UpdateContentProgress handles PATCH /content-progress/{id}
// @Summary Partially update content progress
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress record ID"
// @Param request body models.UpdateContentProgressRequest true "Fields to change"
// @Success 200 {object} models.ContentProgress
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 404 {object} map[string]string "Progress not found"
// @Router /content-progress/{id} [patch]
func (h *RecordHandler) UpdateContentProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req models.UpdateContentProgressRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if (req.Status != nil && !validStoredStatus(*req.Status)) || (req.Points != nil && *req.Points < 0) {
		h.respondError(w, http.StatusBadRequest, "invalid status or points")
		return
	}

	cp, err := h.records.Store(r.Context(), userID).UpdateContentProgress(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondFailure(w, err, "failed to update content progress")
		return
	}
	h.respondJSON(w, http.StatusOK, cp)
}
