package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReconcileEnqueuer is the interface that wraps scheduling of background cascade checks
type ReconcileEnqueuer interface {
	// EnqueueFinalizeUnit schedules the unit completion check of a learner
	EnqueueFinalizeUnit(ctx context.Context, userID int, unitID, moduleID string) error
	// EnqueueFinalizeModule schedules the module completion check of a learner
	EnqueueFinalizeModule(ctx context.Context, userID int, moduleID string) error
}

// CatalogInvalidator is the interface that wraps eviction of cached catalog entries
type CatalogInvalidator interface {
	// InvalidateModule evicts the cached units of a module
	InvalidateModule(ctx context.Context, moduleID string) error
	// InvalidateUnit evicts the cached content items of a unit
	InvalidateUnit(ctx context.Context, unitID string) error
}

// InternalHandler handles service to service and administrative requests
type InternalHandler struct {
	BaseHandler
	tasks ReconcileEnqueuer
	cache CatalogInvalidator
}

// NewInternalHandler creates a new internal handler.
// "cache" may be nil when catalog caching is disabled; invalidation then succeeds without effect.
func NewInternalHandler(tasks ReconcileEnqueuer, cache CatalogInvalidator, logger *zap.Logger) *InternalHandler {
	return &InternalHandler{
		tasks:       tasks,
		cache:       cache,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers the internal routes.
// Reconciliation is guarded by "apiKeyMiddleware", cache invalidation by "adminMiddlewares" in order.
func (h *InternalHandler) RegisterRoutes(r chi.Router, apiKeyMiddleware func(http.Handler) http.Handler, adminMiddlewares ...func(http.Handler) http.Handler) {
	r.Route("/internal", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			r.Post("/users/{userId}/modules/{moduleId}/reconcile", h.ReconcileModule)
			r.Post("/users/{userId}/modules/{moduleId}/units/{unitId}/reconcile", h.ReconcileUnit)
		})
		r.Group(func(r chi.Router) {
			r.Use(adminMiddlewares...)
			r.Post("/catalog/modules/{moduleId}/invalidate", h.InvalidateModule)
			r.Post("/catalog/units/{unitId}/invalidate", h.InvalidateUnit)
		})
	})
}

func (h *InternalHandler) pathUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, err := strconv.Atoi(chi.URLParam(r, "userId"))
	if err != nil || userID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid user ID")
		return 0, false
	}
	return userID, true
}

// ReconcileModule handles POST /internal/users/{userId}/modules/{moduleId}/reconcile
// @Summary Schedule a module completion check
// @Description Enqueues a background check that completes the learner's module when all units are completed
// @Tags internal
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "User ID"
// @Param moduleId path string true "Module ID"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/users/{userId}/modules/{moduleId}/reconcile [post]
func (h *InternalHandler) ReconcileModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "moduleId")

	if err := h.tasks.EnqueueFinalizeModule(r.Context(), userID, moduleID); err != nil {
		h.respondFailure(w, err, "failed to schedule module reconciliation")
		return
	}

	h.logger.Info("module reconciliation scheduled", zap.Int("user_id", userID), zap.String("module_id", moduleID))
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// ReconcileUnit handles POST /internal/users/{userId}/modules/{moduleId}/units/{unitId}/reconcile
// @Summary Schedule a unit completion check
// @Description Enqueues a background check that completes the learner's unit and cascades to the module
// @Tags internal
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "User ID"
// @Param moduleId path string true "Module ID"
// @Param unitId path string true "Unit ID"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/users/{userId}/modules/{moduleId}/units/{unitId}/reconcile [post]
func (h *InternalHandler) ReconcileUnit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathUserID(w, r)
	if !ok {
		return
	}
	unitID := chi.URLParam(r, "unitId")
	moduleID := chi.URLParam(r, "moduleId")

	if err := h.tasks.EnqueueFinalizeUnit(r.Context(), userID, unitID, moduleID); err != nil {
		h.respondFailure(w, err, "failed to schedule unit reconciliation")
		return
	}

	h.logger.Info("unit reconciliation scheduled",
		zap.Int("user_id", userID),
		zap.String("unit_id", unitID),
		zap.String("module_id", moduleID),
	)
	h.respondJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// InvalidateModule handles POST /internal/catalog/modules/{moduleId}/invalidate
// @Summary Evict the cached units of a module
// @Tags internal
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 204
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/catalog/modules/{moduleId}/invalidate [post]
func (h *InternalHandler) InvalidateModule(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if err := h.cache.InvalidateModule(r.Context(), chi.URLParam(r, "moduleId")); err != nil {
			h.respondFailure(w, err, "failed to invalidate module")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// InvalidateUnit handles POST /internal/catalog/units/{unitId}/invalidate
// @Summary Evict the cached content items of a unit
// @Tags internal
// @Security BearerAuth
// @Param unitId path string true "Unit ID"
// @Success 204
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /internal/catalog/units/{unitId}/invalidate [post]
func (h *InternalHandler) InvalidateUnit(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if err := h.cache.InvalidateUnit(r.Context(), chi.URLParam(r, "unitId")); err != nil {
			h.respondFailure(w, err, "failed to invalidate unit")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
