package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/metrics"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"github.com/learnpath/backend/internal/services"
	"go.uber.org/zap"
)

// SessionProvider is the interface that wraps methods building learner progress sessions
type SessionProvider interface {
	// NewSession creates a progress session of a learner
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the authenticated learner.
	// "moduleID" and "unitID" scope the session and may be empty.
	NewSession(ctx context.Context, userID int, moduleID, unitID string) *services.LearnerSession
	// GetModuleSummary retrieves a learner's progress through a module without creating records
	//
	// Returns the summary and an error if any.
	GetModuleSummary(ctx context.Context, userID int, moduleID string) (*models.ModuleProgressSummary, error)
}

// navigateRequest scopes a content level request to a unit and a module
type navigateRequest struct {
	UnitID   string `json:"unitId"`
	ModuleID string `json:"moduleId"`
}

// completeResponse is the outcome of a completion together with whether it changed anything
type completeResponse struct {
	progress.Outcome
	Completed bool `json:"completed"`
}

// ProgressHandler handles learner navigation and progress requests
type ProgressHandler struct {
	BaseHandler
	sessions SessionProvider
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(sessions SessionProvider, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		sessions:    sessions,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all learner progress routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Route("/modules/{moduleId}", func(r chi.Router) {
			r.Post("/start", h.StartModule)
			r.Post("/continue", h.ContinueModule)
			r.Post("/finalize", h.FinalizeModule)
			r.Get("/progress", h.GetModuleProgress)
			r.Post("/units/{unitId}/first", h.GoToFirstContent)
		})
		r.Route("/contents/{contentId}", func(r chi.Router) {
			r.Post("/next", h.GoToNextContent)
			r.Get("/has-next", h.HasNextContent)
			r.Post("/visit", h.VisitContent)
			r.Post("/complete", h.CompleteContent)
		})
		r.Get("/quizzes/{contentId}/modal", h.OpenQuizModal)
		r.Post("/units/{unitId}/finalize", h.FinalizeUnit)
	})
}

// readNavigateRequest reads the unit and module scope from the body, or the query for GET requests.
// The module is required.
func (h *ProgressHandler) readNavigateRequest(w http.ResponseWriter, r *http.Request) (navigateRequest, bool) {
	var req navigateRequest
	if r.Method == http.MethodGet {
		req.UnitID = r.URL.Query().Get("unitId")
		req.ModuleID = r.URL.Query().Get("moduleId")
	} else if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return req, false
	}
	if req.ModuleID == "" {
		h.respondError(w, http.StatusBadRequest, "moduleId is required")
		return req, false
	}
	return req, true
}

// StartModule handles POST /modules/{moduleId}/start
// @Summary Start a module
// @Description Marks the module started, creates progress for its first unit and content item and opens the first content item
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 200 {object} progress.Outcome
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Module has no units or first unit has no content"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /modules/{moduleId}/start [post]
func (h *ProgressHandler) StartModule(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("start")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	session := h.sessions.NewSession(ctx, userID, chi.URLParam(r, "moduleId"), "")
	session.EnsureModuleStarted(ctx)

	start, err := session.InitFirstUnitAndContentProgress(ctx)
	if err != nil {
		h.respondFailure(w, err, "failed to start module")
		return
	}
	if err := session.GoToStart(ctx, start); err != nil {
		h.respondFailure(w, err, "failed to start module")
		return
	}

	h.respondJSON(w, http.StatusOK, session.Outcome())
}

// ContinueModule handles POST /modules/{moduleId}/continue
// @Summary Continue a module
// @Description Reopens the content item the learner visited last. Without progress nothing is navigated.
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 200 {object} progress.Outcome
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Last visited content no longer exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /modules/{moduleId}/continue [post]
func (h *ProgressHandler) ContinueModule(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("continue")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	session := h.sessions.NewSession(r.Context(), userID, chi.URLParam(r, "moduleId"), "")
	if err := session.ContinueFromLastVisited(r.Context()); err != nil {
		h.respondFailure(w, err, "failed to continue module")
		return
	}

	h.respondJSON(w, http.StatusOK, session.Outcome())
}

// GoToFirstContent handles POST /modules/{moduleId}/units/{unitId}/first
// @Summary Open the first content item of a unit
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Param unitId path string true "Unit ID"
// @Success 200 {object} progress.Outcome
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Unit has no content"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /modules/{moduleId}/units/{unitId}/first [post]
func (h *ProgressHandler) GoToFirstContent(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("first_content")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	session := h.sessions.NewSession(r.Context(), userID, chi.URLParam(r, "moduleId"), chi.URLParam(r, "unitId"))
	if err := session.GoToFirstContent(r.Context()); err != nil {
		h.respondFailure(w, err, "failed to open first content")
		return
	}

	h.respondJSON(w, http.StatusOK, session.Outcome())
}

// GoToNextContent handles POST /contents/{contentId}/next
// @Summary Advance to the next content item
// @Description Opens the next content item of the unit, or completes the unit and opens the unit completion modal, or navigates back to the module page after its last unit
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Current content ID"
// @Param request body navigateRequest true "Unit and module of the current content"
// @Success 200 {object} progress.Outcome
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contents/{contentId}/next [post]
func (h *ProgressHandler) GoToNextContent(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("next_content")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	req, ok := h.readNavigateRequest(w, r)
	if !ok {
		return
	}

	session := h.sessions.NewSession(r.Context(), userID, req.ModuleID, req.UnitID)
	if err := session.GoToNextContent(r.Context(), chi.URLParam(r, "contentId"), progress.NavigateOptions{}); err != nil {
		h.respondFailure(w, err, "failed to advance to next content")
		return
	}

	h.respondJSON(w, http.StatusOK, session.Outcome())
}

// HasNextContent handles GET /contents/{contentId}/has-next
// @Summary Check for a next content item in the unit
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Current content ID"
// @Param unitId query string true "Unit ID"
// @Param moduleId query string true "Module ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contents/{contentId}/has-next [get]
func (h *ProgressHandler) HasNextContent(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("has_next")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	req, ok := h.readNavigateRequest(w, r)
	if !ok {
		return
	}

	session := h.sessions.NewSession(r.Context(), userID, req.ModuleID, req.UnitID)
	hasNext, err := session.IsNextContent(r.Context(), chi.URLParam(r, "contentId"))
	if err != nil {
		h.respondFailure(w, err, "failed to check next content")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"hasNext": hasNext})
}

// VisitContent handles POST /contents/{contentId}/visit
// @Summary Record a content visit
// @Description Marks module and unit started, creates the content's progress and moves the last visited pointers
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Content ID"
// @Param request body navigateRequest true "Unit and module of the content"
// @Success 200 {object} progress.Outcome
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /contents/{contentId}/visit [post]
func (h *ProgressHandler) VisitContent(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("visit")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	req, ok := h.readNavigateRequest(w, r)
	if !ok {
		return
	}
	if req.UnitID == "" {
		h.respondError(w, http.StatusBadRequest, "unitId is required")
		return
	}

	session := h.sessions.NewSession(r.Context(), userID, req.ModuleID, req.UnitID)
	session.VisitContent(r.Context(), chi.URLParam(r, "contentId"), progress.NavigateOptions{})

	h.respondJSON(w, http.StatusOK, session.Outcome())
}

// CompleteContent handles POST /contents/{contentId}/complete
// @Summary Complete a content item
// @Description Completes the content item, credits its points once and cascades completion to the unit and the module
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Content ID"
// @Param request body navigateRequest true "Unit and module of the content"
// @Success 200 {object} completeResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Content not found in unit"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contents/{contentId}/complete [post]
func (h *ProgressHandler) CompleteContent(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("complete")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	req, ok := h.readNavigateRequest(w, r)
	if !ok {
		return
	}
	if req.UnitID == "" {
		h.respondError(w, http.StatusBadRequest, "unitId is required")
		return
	}

	session := h.sessions.NewSession(r.Context(), userID, req.ModuleID, req.UnitID)
	completed, err := session.CompleteContent(r.Context(), chi.URLParam(r, "contentId"), progress.NavigateOptions{})
	if err != nil {
		h.respondFailure(w, err, "failed to complete content")
		return
	}

	h.respondJSON(w, http.StatusOK, completeResponse{Outcome: session.Outcome(), Completed: completed})
}

// OpenQuizModal handles GET /quizzes/{contentId}/modal
// @Summary Resolve the quiz modal
// @Description Opens the quiz modal in "passed" mode when the quiz is completed and in "start" mode otherwise
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param contentId path string true "Quiz content ID"
// @Success 200 {object} progress.QuizModalState
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Progress lookup failed"
// @Router /quizzes/{contentId}/modal [get]
func (h *ProgressHandler) OpenQuizModal(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("quiz_modal")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	session := h.sessions.NewSession(r.Context(), userID, r.URL.Query().Get("moduleId"), r.URL.Query().Get("unitId"))
	if !session.QuizModal().OpenModal(r.Context(), chi.URLParam(r, "contentId")) {
		h.respondError(w, http.StatusBadGateway, "failed to resolve quiz progress")
		return
	}

	h.respondJSON(w, http.StatusOK, session.QuizModal().State())
}

// FinalizeUnit handles POST /units/{unitId}/finalize
// @Summary Run the unit completion check
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param unitId path string true "Unit ID"
// @Param request body navigateRequest true "Module of the unit"
// @Success 200 {object} completeResponse
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /units/{unitId}/finalize [post]
func (h *ProgressHandler) FinalizeUnit(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("finalize_unit")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	req, ok := h.readNavigateRequest(w, r)
	if !ok {
		return
	}
	unitID := chi.URLParam(r, "unitId")

	session := h.sessions.NewSession(r.Context(), userID, req.ModuleID, unitID)
	completed, err := session.FinalizeUnit(r.Context(), unitID, req.ModuleID)
	if err != nil {
		h.respondFailure(w, err, "failed to finalize unit")
		return
	}

	h.respondJSON(w, http.StatusOK, completeResponse{Outcome: session.Outcome(), Completed: completed})
}

// FinalizeModule handles POST /modules/{moduleId}/finalize
// @Summary Run the module completion check
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 200 {object} completeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /modules/{moduleId}/finalize [post]
func (h *ProgressHandler) FinalizeModule(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("finalize_module")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	moduleID := chi.URLParam(r, "moduleId")

	session := h.sessions.NewSession(r.Context(), userID, moduleID, "")
	completed, err := session.FinalizeModule(r.Context(), moduleID)
	if err != nil {
		h.respondFailure(w, err, "failed to finalize module")
		return
	}

	h.respondJSON(w, http.StatusOK, completeResponse{Outcome: session.Outcome(), Completed: completed})
}

// GetModuleProgress handles GET /modules/{moduleId}/progress
// @Summary Get module progress overview
// @Description Status of the module and each of its units; nothing is created
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param moduleId path string true "Module ID"
// @Success 200 {object} models.ModuleProgressSummary
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /modules/{moduleId}/progress [get]
func (h *ProgressHandler) GetModuleProgress(w http.ResponseWriter, r *http.Request) {
	defer metrics.ObserveRequest("module_progress")()
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	summary, err := h.sessions.GetModuleSummary(r.Context(), userID, chi.URLParam(r, "moduleId"))
	if err != nil {
		h.respondFailure(w, err, "failed to get module progress")
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}
