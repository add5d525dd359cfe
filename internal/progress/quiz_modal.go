package progress

import (
	"context"
	"sync"

	"github.com/learnpath/backend/internal/models"
	"go.uber.org/zap"
)

// QuizModalMode represents which quiz experience the learner sees
type QuizModalMode string

const (
	QuizModalModeStart  QuizModalMode = "start"
	QuizModalModePassed QuizModalMode = "passed"
)

// QuizModalState is a snapshot of the quiz modal
type QuizModalState struct {
	Open      bool          `json:"open"`
	Mode      QuizModalMode `json:"mode,omitempty"`
	ContentID string        `json:"contentId,omitempty"`
}

// ContentProgressReader is the part of ProgressStore the quiz modal needs
type ContentProgressReader interface {
	GetContentProgress(ctx context.Context, contentID string) (*models.ContentProgress, error)
}

// QuizModal decides whether a learner sees the quiz intro or the "already passed" screen
type QuizModal struct {
	mu     sync.Mutex
	store  ContentProgressReader
	logger *zap.Logger
	state  QuizModalState
}

// NewQuizModal creates a closed quiz modal
func NewQuizModal(store ContentProgressReader, logger *zap.Logger) *QuizModal {
	return &QuizModal{
		store:  store,
		logger: logger,
	}
}

// OpenModal resolves the mode for the quiz and opens the modal.
//
// A missing progress record means the quiz was never started. Any other lookup failure
// is logged and leaves the modal as it was, so a transient error never blocks navigation.
// Returns whether the modal was opened.
func (m *QuizModal) OpenModal(ctx context.Context, contentID string) bool {
	mode := QuizModalModeStart

	cp, err := m.store.GetContentProgress(ctx, contentID)
	switch {
	case err == nil:
		if cp.Status == models.ProgressStatusCompleted {
			mode = QuizModalModePassed
		}
	case models.IsNotFound(err):
	default:
		m.logger.Error("failed to resolve quiz modal mode",
			zap.String("content_id", contentID),
			zap.Error(err),
		)
		return false
	}

	if ctx.Err() != nil {
		return false
	}

	m.mu.Lock()
	m.state = QuizModalState{Open: true, Mode: mode, ContentID: contentID}
	m.mu.Unlock()
	return true
}

// CloseModal resets the modal to its closed state
func (m *QuizModal) CloseModal() {
	m.mu.Lock()
	m.state = QuizModalState{}
	m.mu.Unlock()
}

// State returns the current modal state
func (m *QuizModal) State() QuizModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
