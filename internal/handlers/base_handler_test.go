package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progress"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "deadline", err: fmt.Errorf("failed to list units: %w", context.DeadlineExceeded), expected: http.StatusGatewayTimeout},
		{name: "canceled", err: context.Canceled, expected: http.StatusRequestTimeout},
		{name: "content removed", err: fmt.Errorf("%w: c1", progress.ErrContentNotFound), expected: http.StatusNotFound},
		{name: "empty module", err: progress.ErrModuleHasNoUnits, expected: http.StatusUnprocessableEntity},
		{name: "empty unit", err: progress.ErrUnitHasNoContent, expected: http.StatusUnprocessableEntity},
		{name: "no unit", err: progress.ErrNoActiveUnit, expected: http.StatusBadRequest},
		{name: "not found record", err: models.NewNotFoundError("module progress not found"), expected: http.StatusNotFound},
		{name: "conflict", err: fmt.Errorf("failed to create: %w", models.NewConflictError("exists")), expected: http.StatusConflict},
		{name: "upstream failure", err: &models.StatusError{StatusCode: http.StatusServiceUnavailable, Message: "down"}, expected: http.StatusBadGateway},
		{name: "plain error", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFromError(tt.err))
		})
	}
}

func TestBaseHandler_RespondFailure(t *testing.T) {
	h := &BaseHandler{logger: zap.NewNop()}

	t.Run("client error carries the cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.respondFailure(w, progress.ErrModuleHasNoUnits, "failed to start module")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"error":"module has no units"}`, w.Body.String())
	})

	t.Run("server error hides the cause", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.respondFailure(w, errors.New("dial tcp 10.0.0.1:3306: connection refused"), "failed to start module")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"failed to start module"}`, w.Body.String())
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})
}
