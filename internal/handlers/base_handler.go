package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	authMiddleware "github.com/learnpath/backend/internal/auth/middleware"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondFailure logs "err" and sends the status it maps to.
// Server side failures are reported with "message" so internals do not leak.
func (h *BaseHandler) respondFailure(w http.ResponseWriter, err error, message string) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, zap.Error(err))
		h.respondError(w, status, message)
		return
	}
	h.logger.Debug(message, zap.Int("status", status), zap.Error(err))
	h.respondError(w, status, err.Error())
}

// decodeJSON decodes the request body into "out"; an empty body leaves "out" untouched
func (h *BaseHandler) decodeJSON(r *http.Request, out any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// userID extracts the authenticated learner or answers 401
func (h *BaseHandler) userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.logger.Error("user ID not found in context")
		h.respondError(w, http.StatusUnauthorized, "user ID not found in context")
		return 0, false
	}
	return userID, true
}

// statusFromError maps engine and store errors to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	case errors.Is(err, progress.ErrContentNotFound):
		return http.StatusNotFound
	case errors.Is(err, progress.ErrModuleHasNoUnits), errors.Is(err, progress.ErrUnitHasNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, progress.ErrNoActiveModule), errors.Is(err, progress.ErrNoActiveUnit):
		return http.StatusBadRequest
	}

	code := models.StatusCode(err)
	switch {
	case code == 0:
		return http.StatusInternalServerError
	case code >= http.StatusInternalServerError:
		// the failure happened in a collaborator, not here
		return http.StatusBadGateway
	default:
		return code
	}
}
